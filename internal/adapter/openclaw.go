package adapter

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/agentshield/agentshield-cli/internal/apperr"
	"github.com/agentshield/agentshield-cli/internal/logging"
	"github.com/agentshield/agentshield-cli/internal/uir"
)

// OpenClawAdapter recognizes an OpenClaw skill: a directory carrying a
// SKILL.md with YAML frontmatter. Walk depth is capped at 3 (skills are
// shallower than MCP server trees) and only Python, Shell, and Markdown
// files are collected — OpenClaw skills ship scripts and documentation,
// never a compiled frontend.
type OpenClawAdapter struct{}

const openClawMaxDepth = 3

var skillPermissionRe = regexp.MustCompile(`(?m)^\s*-\s*([a-zA-Z_]+)\s*$`)

func (OpenClawAdapter) Detect(root string) bool {
	_, err := os.Stat(filepath.Join(root, "SKILL.md"))
	return err == nil
}

func (a OpenClawAdapter) Load(root string, log *logging.Logger) ([]uir.ScanTarget, error) {
	ignore := loadGitignore(root)
	var surface uir.ExecutionSurface
	var files []uir.SourceFile
	manifests := map[string]string{}

	skillPath := filepath.Join(root, "SKILL.md")
	skillContent, ok := readCappedFile(skillPath, log)
	if !ok {
		return nil, &apperr.AdapterError{Framework: "openclaw", Path: root, Message: "SKILL.md unreadable"}
	}
	tools := parseSkillTools(skillContent)

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Logf(path, "walk error: %v", err)
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		if rel == "." {
			return nil
		}
		depth := strings.Count(rel, string(filepath.Separator)) + 1
		if isIgnored(rel, ignore) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if depth > openClawMaxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if depth > openClawMaxDepth {
			return nil
		}

		name := filepath.Base(path)
		lower := strings.ToLower(name)
		isCollected := strings.HasSuffix(lower, ".py") || strings.HasSuffix(lower, ".sh") ||
			strings.HasSuffix(lower, ".bash") || strings.HasSuffix(lower, ".md")
		if !isCollected {
			if manifestFiles[name] {
				content, ok := readCappedFile(path, log)
				if ok {
					manifests[path] = content
				}
			}
			return nil
		}

		content, ok := readCappedFile(path, log)
		if !ok {
			return nil
		}
		files = append(files, newSourceFile(path, content))
		parseFile(path, content, &surface, log)
		return nil
	})
	if err != nil {
		return nil, err
	}

	target := uir.ScanTarget{
		Name:      filepath.Base(root),
		RootPath:  root,
		Framework: uir.FrameworkOpenClaw,
		Files:     files,
		Execution: surface,
		Tools:     tools,
		Deps:      collectDependencySurface(manifests),
	}
	return []uir.ScanTarget{target}, nil
}

// parseSkillTools extracts a single ToolSurface for the skill itself (a
// SKILL.md describes one capability, unlike an MCP server's many tools),
// reading its name from the frontmatter "name:" field and its permission
// list from a "permissions:" YAML block.
func parseSkillTools(content string) []uir.ToolSurface {
	name := "skill"
	if m := regexp.MustCompile(`(?m)^name:\s*(.+)$`).FindStringSubmatch(content); m != nil {
		name = strings.TrimSpace(m[1])
	}
	description := ""
	if m := regexp.MustCompile(`(?m)^description:\s*(.+)$`).FindStringSubmatch(content); m != nil {
		description = strings.TrimSpace(m[1])
	}

	var perms []uir.Permission
	if idx := strings.Index(content, "permissions:"); idx >= 0 {
		block := content[idx+len("permissions:"):]
		if end := strings.Index(block, "\n---"); end >= 0 {
			block = block[:end]
		}
		for _, m := range skillPermissionRe.FindAllStringSubmatch(block, -1) {
			perms = append(perms, uir.Permission(m[1]))
		}
	}

	return []uir.ToolSurface{{Name: name, Description: description, Permissions: perms}}
}

package adapter

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentshield/agentshield-cli/internal/logging"
	"github.com/agentshield/agentshield-cli/internal/uir"
)

// MCPAdapter recognizes a Model Context Protocol server: a directory whose
// package.json contains "modelcontextprotocol", a quoted "mcp" or
// "mcp-server"; whose pyproject.toml contains "modelcontextprotocol",
// "mcp[" or a quoted "mcp"; whose requirements.txt has a line starting with
// "mcp"; or which holds a top-level .py file containing "from mcp",
// "import mcp" or "@server.tool". Walk depth is capped at 5 and honors the
// root .gitignore.
type MCPAdapter struct{}

const mcpMaxDepth = 5

func (MCPAdapter) Detect(root string) bool {
	if data, err := os.ReadFile(filepath.Join(root, "package.json")); err == nil {
		s := string(data)
		if strings.Contains(s, "modelcontextprotocol") || strings.Contains(s, "\"mcp\"") || strings.Contains(s, "mcp-server") {
			return true
		}
	}
	if data, err := os.ReadFile(filepath.Join(root, "pyproject.toml")); err == nil {
		s := string(data)
		if strings.Contains(s, "modelcontextprotocol") || strings.Contains(s, "mcp[") || strings.Contains(s, "\"mcp\"") {
			return true
		}
	}
	if data, err := os.ReadFile(filepath.Join(root, "requirements.txt")); err == nil {
		sc := bufio.NewScanner(strings.NewReader(string(data)))
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if strings.HasPrefix(line, "mcp") {
				return true
			}
		}
	}
	entries, err := os.ReadDir(root)
	if err == nil {
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".py") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(root, e.Name()))
			if err != nil {
				continue
			}
			s := string(data)
			if strings.Contains(s, "from mcp") || strings.Contains(s, "import mcp") || strings.Contains(s, "@server.tool") {
				return true
			}
		}
	}
	return false
}

func (a MCPAdapter) Load(root string, log *logging.Logger) ([]uir.ScanTarget, error) {
	ignore := loadGitignore(root)
	var surface uir.ExecutionSurface
	var files []uir.SourceFile
	manifests := map[string]string{}

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
			if depth > mcpMaxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if depth > mcpMaxDepth {
			return nil
		}

		name := filepath.Base(path)
		if manifestFiles[name] {
			content, ok := readCappedFile(path, log)
			if ok {
				manifests[path] = content
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

	tools := extractMCPTools(manifests)
	prov := extractMCPProvenance(manifests)

	target := uir.ScanTarget{
		Name:       filepath.Base(root),
		RootPath:   root,
		Framework:  uir.FrameworkMCP,
		Files:      files,
		Execution:  surface,
		Tools:      tools,
		Deps:       collectDependencySurface(manifests),
		Provenance: prov,
	}
	return []uir.ScanTarget{target}, nil
}

// extractMCPTools reads a minimal tool-name list out of package.json's
// "mcp.tools" array when present. Full JSON-Schema tool definitions are out
// of scope for a lexical pass; the tool *names* are enough for
// SHIELD-008's declared-vs-observed permission correlation, since
// permissions are declared per-tool in the same manifest block.
func extractMCPTools(manifests map[string]string) []uir.ToolSurface {
	var tools []uir.ToolSurface
	for path, content := range manifests {
		if filepath.Base(path) != "package.json" {
			continue
		}
		var doc struct {
			MCP struct {
				Tools []struct {
					Name        string   `json:"name"`
					Description string   `json:"description"`
					Permissions []string `json:"permissions"`
				} `json:"tools"`
			} `json:"mcp"`
		}
		if err := json.Unmarshal([]byte(content), &doc); err != nil {
			continue
		}
		for _, t := range doc.MCP.Tools {
			perms := make([]uir.Permission, 0, len(t.Permissions))
			for _, p := range t.Permissions {
				perms = append(perms, uir.Permission(p))
			}
			tools = append(tools, uir.ToolSurface{
				Name:        t.Name,
				Description: t.Description,
				Permissions: perms,
			})
		}
	}
	return tools
}

func extractMCPProvenance(manifests map[string]string) uir.ProvenanceSurface {
	for path, content := range manifests {
		if filepath.Base(path) != "package.json" {
			continue
		}
		var doc struct {
			Name       string `json:"name"`
			Version    string `json:"version"`
			Author     string `json:"author"`
			Repository any    `json:"repository"`
		}
		if err := json.Unmarshal([]byte(content), &doc); err != nil {
			continue
		}
		repo := ""
		switch r := doc.Repository.(type) {
		case string:
			repo = r
		case map[string]any:
			if u, ok := r["url"].(string); ok {
				repo = u
			}
		}
		return uir.ProvenanceSurface{
			PackageName: doc.Name,
			Version:     doc.Version,
			Author:      doc.Author,
			Repository:  repo,
		}
	}
	return uir.ProvenanceSurface{}
}

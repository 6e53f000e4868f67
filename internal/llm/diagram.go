package llm

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/lorem111/github-analyze/internal/github"
)

// maxDiagramFiles caps how much of the tree is sent to the model.
const maxDiagramFiles = 50

const defaultDiagramPrompt = `You are a Mermaid diagram generator. Create a flowchart diagram that represents the architecture and file structure of a software project.

Rules:
1. Generate a Mermaid flowchart (graph TD format)
2. Show main directories as nodes
3. Group related files under their directories
4. Use meaningful node IDs (A, B, C, etc.)
5. Show relationships between components
6. Keep it simple and readable (max 15-20 nodes)
7. Focus on important files like configs, main source files, tests, docs
8. Use descriptive labels in square brackets
9. IMPORTANT: Use individual connections only (A --> B), never use & operator
10. Each connection must be on its own line

Return only the Mermaid diagram code, nothing else. Do not use markdown code blocks.`

// DiagramGenerator produces a Mermaid architecture diagram for a
// repository from its file tree.
type DiagramGenerator struct {
	LLM    LLMClient
	Prompt string
}

func NewDiagramGenerator(client LLMClient, prompt string) *DiagramGenerator {
	if prompt == "" {
		prompt = defaultDiagramPrompt
	}
	return &DiagramGenerator{LLM: client, Prompt: prompt}
}

// Generate always returns a renderable diagram: a placeholder when no
// LLM is configured and an error diagram when generation fails.
func (g *DiagramGenerator) Generate(ctx context.Context, repoName string, files []github.TreeEntry) string {
	if g.LLM == nil {
		return "graph TD\n    A[Repository] --> B[No API key configured]"
	}

	if len(files) > maxDiagramFiles {
		files = files[:maxDiagramFiles]
	}
	structure := fileStructureText(files)

	prompt := fmt.Sprintf("%s\n\nRepository: %s\n\nFile structure:\n%s", g.Prompt, repoName, structure)
	response, err := g.LLM.Generate(ctx, prompt)
	if err != nil {
		log.Printf("diagram generation failed for %s: %v", repoName, err)
		return fmt.Sprintf("graph TD\n    A[%s] --> B[Error generating diagram]", repoName)
	}

	return CleanMermaid(response)
}

// CleanMermaid normalizes LLM output into valid Mermaid: strips fences,
// splits &-joined sources into individual edges and guarantees a graph
// directive.
func CleanMermaid(response string) string {
	text := strings.TrimSpace(response)
	text = strings.ReplaceAll(text, "```mermaid", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	var fixed []string
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "&") && strings.Contains(line, "-->") {
			parts := strings.SplitN(line, "-->", 2)
			left := strings.TrimSpace(parts[0])
			right := strings.TrimSpace(parts[1])
			if strings.Contains(left, "&") {
				for _, source := range strings.Split(left, "&") {
					fixed = append(fixed, fmt.Sprintf("    %s --> %s", strings.TrimSpace(source), right))
				}
				continue
			}
		}
		fixed = append(fixed, line)
	}
	text = strings.Join(fixed, "\n")

	if !strings.HasPrefix(text, "graph") {
		text = "graph TD\n" + text
	}
	return text
}

type treeNode struct {
	children map[string]*treeNode
	size     int
	isFile   bool
}

// fileStructureText renders the file list as an indented directory
// outline, sorted for a stable prompt.
func fileStructureText(files []github.TreeEntry) string {
	root := &treeNode{children: map[string]*treeNode{}}
	for _, f := range files {
		current := root
		parts := strings.Split(f.Path, "/")
		for i, part := range parts {
			child, ok := current.children[part]
			if !ok {
				child = &treeNode{children: map[string]*treeNode{}}
				current.children[part] = child
			}
			if i == len(parts)-1 {
				child.isFile = true
				child.size = f.Size
			}
			current = child
		}
	}

	var b strings.Builder
	writeTree(&b, root, 0)
	return b.String()
}

func writeTree(b *strings.Builder, node *treeNode, level int) {
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Strings(names)

	indent := strings.Repeat("  ", level)
	for _, name := range names {
		child := node.children[name]
		if child.isFile {
			if child.size > 0 {
				fmt.Fprintf(b, "%s%s (%d bytes)\n", indent, name, child.size)
			} else {
				fmt.Fprintf(b, "%s%s\n", indent, name)
			}
		} else {
			fmt.Fprintf(b, "%s%s/\n", indent, name)
			writeTree(b, child, level+1)
		}
	}
}

// Package markdown turns Markdown files with YAML frontmatter into posts and
// publishes them through the backend API.
package markdown

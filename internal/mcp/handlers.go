package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/folio-dev/folio/internal/content"
	"github.com/folio-dev/folio/internal/vectordb"
)

func (s *Server) handleListPosts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}

	posts, err := s.repo.List(content.ListOptions{
		Tag:   request.GetString("tag", ""),
		Limit: limit,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing posts failed: %v", err)), nil
	}
	if len(posts) == 0 {
		return mcp.NewToolResultText("No published posts found."), nil
	}
	return mcp.NewToolResultText(formatPosts(posts)), nil
}

func (s *Server) handleGetPost(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := request.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: slug"), nil
	}

	post, err := s.repo.GetBySlugStrict(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("No post with slug %q. Use list_posts to see available slugs.", slug)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to load post %q: %v", slug, err)), nil
	}

	var sb strings.Builder
	fm := post.Frontmatter
	fmt.Fprintf(&sb, "# %s\n\n", fm.Title)
	fmt.Fprintf(&sb, "Slug: %s\n", post.Slug)
	fmt.Fprintf(&sb, "Date: %s\n", post.Date.Format(time.DateOnly))
	if len(fm.Tags) > 0 {
		fmt.Fprintf(&sb, "Tags: %s\n", strings.Join(fm.Tags, ", "))
	}
	if fm.Author != "" {
		fmt.Fprintf(&sb, "Author: %s\n", fm.Author)
	}
	if !fm.IsPublished() {
		sb.WriteString("Status: draft\n")
	}
	fmt.Fprintf(&sb, "Reading time: %s (%d words)\n", post.ReadingTime.Text, post.WordCount)
	fmt.Fprintf(&sb, "Summary: %s\n\n", fm.Summary)
	sb.WriteString(post.Content)
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleSearchPosts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	limit := request.GetInt("limit", 5)
	if limit <= 0 {
		limit = 5
	}
	tag := request.GetString("tag", "")

	if s.store != nil && s.store.Count() > 0 {
		var filter *vectordb.SearchFilter
		if tag != "" {
			filter = &vectordb.SearchFilter{Tag: &tag}
		}
		results, err := s.store.Search(ctx, query, limit, filter)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}
		return mcp.NewToolResultText(vectordb.FormatResults(results)), nil
	}

	posts, err := s.repo.List(content.ListOptions{Tag: tag})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	posts = content.Filter(posts, query, "")
	if len(posts) > limit {
		posts = posts[:limit]
	}
	if len(posts) == 0 {
		return mcp.NewToolResultText("No matching posts."), nil
	}
	return mcp.NewToolResultText(formatPosts(posts)), nil
}

func (s *Server) handleListTags(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	posts, err := s.repo.List(content.ListOptions{})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing tags failed: %v", err)), nil
	}
	tags := content.CollectTags(posts)
	if len(tags) == 0 {
		return mcp.NewToolResultText("No tags found."), nil
	}

	counts := make(map[string]int, len(tags))
	for _, p := range posts {
		for _, t := range p.Frontmatter.Tags {
			counts[t]++
		}
	}
	var sb strings.Builder
	for _, t := range tags {
		fmt.Fprintf(&sb, "%s (%d)\n", t, counts[t])
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleAskAboutMe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil || strings.TrimSpace(question) == "" {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}
	if s.bot == nil {
		return mcp.NewToolResultError("No profile is configured. Set profile_path in folio.yml."), nil
	}
	category, reply := s.bot.Answer(question)
	return mcp.NewToolResultText(fmt.Sprintf("[%s] %s", category, reply)), nil
}

// formatPosts renders a post list for agent consumption.
func formatPosts(posts []content.Post) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d post(s):\n", len(posts))
	for i, p := range posts {
		fm := p.Frontmatter
		fmt.Fprintf(&sb, "\n%d. %s (%s)\n", i+1, fm.Title, p.Slug)
		fmt.Fprintf(&sb, "   Date: %s\n", p.Date.Format(time.DateOnly))
		if len(fm.Tags) > 0 {
			fmt.Fprintf(&sb, "   Tags: %s\n", strings.Join(fm.Tags, ", "))
		}
		if fm.IsHot {
			sb.WriteString("   Hot: yes\n")
		}
		fmt.Fprintf(&sb, "   %s\n", fm.Summary)
	}
	return sb.String()
}

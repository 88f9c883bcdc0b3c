package mcp

import "github.com/mark3labs/mcp-go/mcp"

var listPostsTool = mcp.NewTool("list_posts",
	mcp.WithDescription("List published blog posts, newest first, with their slug, date, tags and summary."),
	mcp.WithString("tag",
		mcp.Description("Only list posts carrying this exact tag"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of posts to return (default 20)"),
	),
)

var getPostTool = mcp.NewTool("get_post",
	mcp.WithDescription("Get the full markdown body and metadata of a blog post."),
	mcp.WithString("slug",
		mcp.Required(),
		mcp.Description("Post slug, as shown by list_posts"),
	),
)

var searchPostsTool = mcp.NewTool("search_posts",
	mcp.WithDescription("Search blog posts. Uses the semantic index when one has been built, keyword matching otherwise."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language or keyword query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 5)"),
	),
	mcp.WithString("tag",
		mcp.Description("Only search posts carrying this exact tag"),
	),
)

var listTagsTool = mcp.NewTool("list_tags",
	mcp.WithDescription("List every tag used by published posts, with post counts."),
)

var askAboutMeTool = mcp.NewTool("ask_about_me",
	mcp.WithDescription("Ask the site owner's profile assistant a question about their skills, experience, education, projects or contact details."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("The question to ask"),
	),
)

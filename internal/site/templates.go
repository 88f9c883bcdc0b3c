package site

import (
	"html/template"
	"strings"
	"time"

	"github.com/folio-dev/folio/internal/content"
)

var templateFuncs = template.FuncMap{
	"formatDate": func(t time.Time) string { return t.Format("January 2, 2006") },
	"isoDate":    func(t time.Time) string { return t.Format(time.DateOnly) },
	"wordCount":  content.FormatWordCount,
	"postURL":    postURL,
	"isExternal": isExternal,
	"firstTags": func(tags []string, n int) []string {
		if len(tags) > n {
			return tags[:n]
		}
		return tags
	},
	"moreTags": func(tags []string, n int) int {
		return max(len(tags)-n, 0)
	},
	"searchText": func(p content.Post) string {
		return strings.ToLower(p.Frontmatter.Title + " " + p.Frontmatter.Summary + " " + strings.Join(p.Frontmatter.Tags, " "))
	},
	"seq": func(n int) []int {
		s := make([]int, n)
		for i := range s {
			s[i] = i + 1
		}
		return s
	},
	"add":  func(a, b int) int { return a + b },
	"sub":  func(a, b int) int { return a - b },
	"year": func() int { return time.Now().Year() },
}

// postURL is where a post card links: the portfolio for hot posts that
// have one, the post page otherwise.
func postURL(p content.Post) string {
	if target := redirectTarget(&p); target != "" {
		return target
	}
	return "/blog/" + p.Slug
}

func isExternal(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <meta name="description" content="{{.Site.Description}}">
  <link rel="stylesheet" href="/static/style.css">
</head>
<body data-live="{{.Live}}" data-effects="{{.Effects}}">
  {{if .Effects}}<canvas id="neural-canvas" aria-hidden="true"></canvas>
  <div id="sudoku-grid" class="sudoku-grid" aria-hidden="true"></div>{{end}}
  {{template "blobs"}}
  <nav class="navbar">
    <a class="brand" href="/">{{.Site.Title}}</a>
    <div class="nav-links">
      <a href="/"{{if eq .Active "home"}} class="active"{{end}}>Home</a>
      <a href="/blog"{{if eq .Active "blog"}} class="active"{{end}}>Blog</a>
      <a href="/resume"{{if eq .Active "resume"}} class="active"{{end}}>Resume</a>
    </div>
  </nav>
  <main class="container">
{{template "content" .}}
  </main>
  <footer class="footer">&copy; {{year}} {{.Site.Author}}</footer>
  {{if .Chat}}{{template "chat"}}{{end}}
  <script src="/static/app.js"></script>
</body>
</html>{{end}}`

const partialsTemplate = `
{{define "card"}}<article class="card{{if .Frontmatter.IsHot}} card-hot{{end}}" data-search="{{searchText .}}">
  {{$url := postURL .}}
  <a class="card-link" href="{{$url}}"{{if isExternal $url}} target="_blank" rel="noopener"{{end}}>
    {{if .Frontmatter.IsHot}}<span class="hot-badge">Hot News &#128293;</span>{{end}}
    {{with .Frontmatter.Cover}}<img class="card-cover" src="{{.}}" alt="" loading="lazy">{{end}}
    <h3>{{.Frontmatter.Title}}</h3>
    {{with .Frontmatter.Summary}}<p class="card-summary">{{.}}</p>{{end}}
    <div class="post-meta">
      <time datetime="{{isoDate .Date}}">{{formatDate .Date}}</time>
      <span>{{.ReadingTime.Text}}</span>
      <span>{{wordCount .WordCount}}</span>
    </div>
  </a>
  {{if .Frontmatter.Tags}}<div class="tags">
    {{range firstTags .Frontmatter.Tags 3}}<a class="tag-pill tag-sm" href="/blog/tags/{{.}}">{{.}}</a>{{end}}
    {{with moreTags .Frontmatter.Tags 3}}<span class="tags-more">+{{.}} more</span>{{end}}
  </div>{{end}}
  {{if and .Frontmatter.IsHot .Frontmatter.PortfolioLink}}<span class="card-more card-more-hot">View Portfolio &rarr;</span>{{else}}<span class="card-more">Read more &rarr;</span>{{end}}
</article>{{end}}

{{define "cards"}}<div class="grid">{{range .}}{{template "card" .}}{{end}}</div>{{end}}

{{define "blobs"}}<div class="liquid-glass" aria-hidden="true">
    <svg xmlns="http://www.w3.org/2000/svg">
      <defs>
        <filter id="goo">
          <feGaussianBlur in="SourceGraphic" stdDeviation="10" result="blur"/>
          <feColorMatrix in="blur" mode="matrix" values="1 0 0 0 0  0 1 0 0 0  0 0 1 0 0  0 0 0 18 -8" result="goo"/>
        </filter>
        <linearGradient id="blob-gradient-1" x1="0%" y1="0%" x2="100%" y2="100%">
          <stop offset="0%" stop-color="#3b82f6" stop-opacity="0.3"/>
          <stop offset="100%" stop-color="#60a5fa" stop-opacity="0.1"/>
        </linearGradient>
        <linearGradient id="blob-gradient-2" x1="0%" y1="0%" x2="100%" y2="100%">
          <stop offset="0%" stop-color="#22d3ee" stop-opacity="0.2"/>
          <stop offset="100%" stop-color="#06b6d4" stop-opacity="0.1"/>
        </linearGradient>
      </defs>
      <g filter="url(#goo)">
        <circle class="blob" cx="20%" cy="20%" r="120" fill="url(#blob-gradient-1)"/>
        <circle class="blob blob-delay-2" cx="80%" cy="80%" r="100" fill="url(#blob-gradient-2)"/>
        <circle class="blob blob-delay-4" cx="40%" cy="60%" r="80" fill="url(#blob-gradient-1)"/>
      </g>
    </svg>
  </div>{{end}}

{{define "chat"}}<div class="chat" id="chat">
  <button class="chat-toggle" id="chat-toggle" aria-label="Open chat">&#128172;</button>
  <section class="chat-panel" id="chat-panel" hidden>
    <header class="chat-header"><span>Ask me anything</span><button id="chat-close" aria-label="Close chat">&times;</button></header>
    <div class="chat-messages" id="chat-messages" aria-live="polite"></div>
    <form class="chat-form" id="chat-form">
      <input id="chat-input" maxlength="1000" placeholder="Type your message..." autocomplete="off">
      <button type="submit">Send</button>
    </form>
  </section>
</div>{{end}}
`

var pageTemplates = map[string]string{
	"home":   homeTemplate,
	"blog":   blogTemplate,
	"post":   postTemplate,
	"resume": resumeTemplate,
	"error":  errorTemplate,
}

const homeTemplate = `{{define "content"}}{{with .Body}}
{{with .Profile}}
<section class="hero section" data-section>
  <span class="hero-hello">Hello, I'm</span>
  <h1>{{.Personal.Name}}</h1>
  <p class="hero-title">{{.Personal.Title}}</p>
  <p class="hero-bio">{{.Personal.Bio}}</p>
  <div class="hero-actions">
    <a class="resume-cta resume-cta-prominent" href="/resume">View Resume</a>
    <a class="button-ghost" href="/blog">Read the Blog</a>
  </div>
  <div class="social">
    {{with .Personal.Github}}<a href="{{.}}" target="_blank" rel="noopener">GitHub</a>{{end}}
    {{with .Personal.Linkedin}}<a href="{{.}}" target="_blank" rel="noopener">LinkedIn</a>{{end}}
    {{with .Personal.Email}}<a href="mailto:{{.}}">Email</a>{{end}}
  </div>
</section>

<section class="section about" data-section>
  <h2>About Me</h2>
  <div class="about-grid">
    <div class="panel">
      <h3>Get to know me!</h3>
      <p>{{.Personal.Bio}}</p>
      {{with .Personal.Location}}<p class="muted">&#128205; {{.}}</p>{{end}}
      {{with .Personal.Email}}<p class="muted">&#9993; {{.}}</p>{{end}}
    </div>
    <div class="panel stats">
      <h3>Quick Stats</h3>
      <div class="stat"><span>Projects</span><strong>{{len .Projects}}</strong></div>
      <div class="stat"><span>Experience</span><strong>{{len .Experience}}</strong></div>
      <div class="stat"><span>Technologies</span><strong>{{.SkillCount}}</strong></div>
    </div>
  </div>
</section>

{{if .Education}}<section class="section" data-section>
  <h2>Education</h2>
  {{range .Education}}<div class="panel timeline-item">
    <h3>{{.Degree}}</h3>
    <h4>{{.Institution}}</h4>
    <p class="muted">{{.Duration}}{{with .GPA}} &middot; GPA {{.}}{{end}}</p>
    <p>{{.Description}}</p>
    {{if .Achievements}}<ul>{{range .Achievements}}<li>{{.}}</li>{{end}}</ul>{{end}}
  </div>{{end}}
</section>{{end}}

{{if .Experience}}<section class="section" data-section>
  <h2>Experience</h2>
  {{range .Experience}}<div class="panel timeline-item">
    <h3>{{.Position}}</h3>
    <h4>{{.Company}}</h4>
    <p class="muted">{{.Duration}}{{with .Location}} &middot; {{.}}{{end}}</p>
    <p>{{.Description}}</p>
    {{if .Achievements}}<ul>{{range .Achievements}}<li>{{.}}</li>{{end}}</ul>{{end}}
    {{if .Technologies}}<div class="tags">{{range .Technologies}}<span class="tag-pill tag-sm">{{.}}</span>{{end}}</div>{{end}}
  </div>{{end}}
</section>{{end}}

{{if .Projects}}<section class="section" data-section>
  <h2>Projects</h2>
  <div class="grid">{{range .Projects}}<article class="card project">
    {{with .Image}}<img class="card-cover" src="{{.}}" alt="" loading="lazy">{{end}}
    <h3>{{.Title}}</h3>
    <p class="card-summary">{{.Description}}</p>
    {{if .Technologies}}<div class="tags">{{range .Technologies}}<span class="tag-pill tag-sm">{{.}}</span>{{end}}</div>{{end}}
    <div class="project-links">
      {{with .GithubURL}}<a href="{{.}}" target="_blank" rel="noopener">Code</a>{{end}}
      {{with .LiveURL}}<a href="{{.}}" target="_blank" rel="noopener">Live</a>{{end}}
    </div>
  </article>{{end}}</div>
</section>{{end}}

{{if .Skills}}<section class="section" data-section>
  <h2>Skills</h2>
  <div class="grid">{{range .Skills}}<div class="panel">
    <h3 class="capitalize">{{.Name}}</h3>
    {{range .Skills}}<div class="skill">
      <div class="skill-label"><span>{{.Name}}</span><span>{{.Level}}%</span></div>
      <div class="skill-bar"><div class="skill-fill" style="width: {{.Level}}%"></div></div>
    </div>{{end}}
  </div>{{end}}</div>
</section>{{end}}

{{if .Awards}}<section class="section" data-section>
  <h2>Awards</h2>
  <div class="grid">{{range .Awards}}<div class="panel">
    <h3>{{.Title}}</h3>
    <h4>{{.Issuer}}</h4>
    <p class="muted">{{.Date}}</p>
    <p>{{.Description}}</p>
  </div>{{end}}</div>
</section>{{end}}
{{else}}
<section class="hero section" data-section>
  <h1>Welcome</h1>
  <p class="hero-bio">Thoughts on machine learning, web development, and technology.</p>
</section>
{{end}}

{{if .Hot}}<section class="section" data-section>
  <h2>&#128293; Hot News</h2>
  {{template "cards" .Hot}}
</section>{{end}}

{{if .Latest}}<section class="section" data-section>
  <h2>Latest Posts</h2>
  {{template "cards" .Latest}}
  <p><a class="button-ghost" href="/blog">All posts &rarr;</a></p>
</section>{{end}}
{{end}}{{end}}`

const blogTemplate = `{{define "content"}}{{with .Body}}
<header class="page-header">
  <h1>Blog</h1>
  <p>Thoughts on machine learning, web development, and technology</p>
</header>

<form class="blog-controls" id="blog-search" action="/blog" method="get">
  <input type="search" name="q" value="{{.Query}}" placeholder="Search posts..." aria-label="Search posts">
  {{if and .Tag (not .TagRoute)}}<input type="hidden" name="tag" value="{{.Tag}}">{{end}}
  <select name="sort" aria-label="Sort by">
    <option value="date"{{if ne .Sort "title"}} selected{{end}}>Date</option>
    <option value="title"{{if eq .Sort "title"}} selected{{end}}>Title</option>
  </select>
  <button type="submit">Search</button>
</form>

<div class="tag-filter">
  <span class="muted">Filter by tag:</span>
  <a class="tag-pill{{if not .Tag}} active{{end}}" href="/blog">All</a>
  {{$data := .}}{{range .Tags}}<a class="tag-pill{{if eq . $data.Tag}} active{{end}}" href="{{$data.TagURL .}}">{{.}}</a>{{end}}
</div>

{{if .Hot}}<section class="section">
  <h2>&#128293; Hot News</h2>
  {{template "cards" .Hot}}
</section>{{end}}

<section class="section">
  <div class="section-head">
    <h2>{{.Heading}}</h2>
    <span class="muted" id="post-count">{{.Page.TotalPosts}} post{{if ne .Page.TotalPosts 1}}s{{end}}</span>
  </div>
  {{if .Page.Posts}}{{template "cards" .Page.Posts}}
  {{else}}<div class="empty">
    <p>No posts found</p>
    <p class="muted">Try adjusting your search or filters</p>
  </div>{{end}}
</section>

{{if .Paginated}}<nav class="pagination" aria-label="Pagination">
  {{if .Page.HasPrevPage}}<a href="{{.PageURL (sub .Page.CurrentPage 1)}}">&larr; Newer</a>{{end}}
  {{range seq .Page.TotalPages}}<a href="{{$data.PageURL .}}"{{if eq . $data.Page.CurrentPage}} class="active" aria-current="page"{{end}}>{{.}}</a>{{end}}
  {{if .Page.HasNextPage}}<a href="{{.PageURL (add .Page.CurrentPage 1)}}">Older &rarr;</a>{{end}}
</nav>{{end}}
{{end}}{{end}}`

const postTemplate = `{{define "content"}}{{with .Body}}{{with .Post}}
<article class="post">
  <a class="back-link" href="/blog">&larr; Back to blog</a>
  {{with .Frontmatter.Cover}}<img class="post-cover" src="{{.}}" alt="">{{end}}
  <h1>{{.Frontmatter.Title}}</h1>
  <div class="post-meta">
    {{with .Frontmatter.Author}}<span>{{.}}</span>{{end}}
    <time datetime="{{isoDate .Date}}">{{formatDate .Date}}</time>
    <span>{{.ReadingTime.Text}}</span>
    <span>{{wordCount .WordCount}}</span>
  </div>
  {{if .Frontmatter.Tags}}<div class="tags">{{range .Frontmatter.Tags}}<a class="tag-pill" href="/blog/tags/{{.}}">{{.}}</a>{{end}}</div>{{end}}
{{end}}
  <button class="share-button" type="button" data-share-url="{{.ShareURL}}" data-share-title="{{.Post.Frontmatter.Title}}">Share</button>
  <div class="prose">{{.HTML}}</div>
</article>

{{if .Related}}<section class="section">
  <h2>Related Posts</h2>
  {{template "cards" .Related}}
</section>{{end}}
{{end}}{{end}}`

const resumeTemplate = `{{define "content"}}
<header class="page-header">
  <h1>Resume</h1>
  <p>Professional experience, skills, and education</p>
</header>
{{with .Body}}
<div class="resume panel">
  <h2>{{.Personal.Name}}</h2>
  <p class="hero-title">{{.Personal.Title}}</p>

  <section>
    <h3>Contact</h3>
    <ul class="contact">
      {{with .Personal.Email}}<li><a href="mailto:{{.}}">{{.}}</a></li>{{end}}
      {{with .Personal.Location}}<li>{{.}}</li>{{end}}
      {{with .Personal.Github}}<li><a href="{{.}}">{{.}}</a></li>{{end}}
      {{with .Personal.Linkedin}}<li><a href="{{.}}">{{.}}</a></li>{{end}}
    </ul>
  </section>

  <section>
    <h3>Professional Summary</h3>
    <p>{{.Personal.Bio}}</p>
  </section>

  {{if .Skills}}<section>
    <h3>Technical Skills</h3>
    {{range .Skills}}<p><strong class="capitalize">{{.Name}}:</strong> {{range $i, $s := .Skills}}{{if $i}}, {{end}}{{$s.Name}}{{end}}</p>{{end}}
  </section>{{end}}

  {{if .Experience}}<section>
    <h3>Professional Experience</h3>
    {{range .Experience}}<div class="resume-item">
      <h4>{{.Position}} &middot; {{.Company}}</h4>
      <p class="muted">{{.Duration}}{{with .Location}} &middot; {{.}}{{end}}</p>
      <p>{{.Description}}</p>
      {{if .Achievements}}<ul>{{range .Achievements}}<li>{{.}}</li>{{end}}</ul>{{end}}
    </div>{{end}}
  </section>{{end}}

  {{if .Education}}<section>
    <h3>Education</h3>
    {{range .Education}}<div class="resume-item">
      <h4>{{.Degree}}</h4>
      <p class="muted">{{.Institution}} &middot; {{.Duration}}{{with .GPA}} &middot; GPA {{.}}{{end}}</p>
    </div>{{end}}
  </section>{{end}}

  {{if .Projects}}<section>
    <h3>Notable Projects</h3>
    {{range .Projects}}<div class="resume-item">
      <h4>{{.Title}}</h4>
      <p>{{.Description}}</p>
    </div>{{end}}
  </section>{{end}}

  {{if .Awards}}<section>
    <h3>Awards</h3>
    <ul>{{range .Awards}}<li><strong>{{.Title}}</strong>, {{.Issuer}} ({{.Date}})</li>{{end}}</ul>
  </section>{{end}}
</div>
{{else}}
<div class="empty"><p>No resume has been published yet.</p></div>
{{end}}
{{end}}`

const errorTemplate = `{{define "content"}}{{with .Body}}
<section class="error-page">
  <h1>{{.Status}}</h1>
  <p>{{.Message}}</p>
  <p><a class="button-ghost" href="/">Go home</a> <a class="button-ghost" href="/blog">Browse the blog</a></p>
</section>
{{end}}{{end}}`

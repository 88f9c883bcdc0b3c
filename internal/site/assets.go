package site

// cssContent is served as /static/style.css.
const cssContent = `:root {
  --bg: #0b1020;
  --bg-2: #111831;
  --panel: rgba(255, 255, 255, 0.05);
  --panel-hover: rgba(255, 255, 255, 0.1);
  --border: rgba(255, 255, 255, 0.1);
  --text: #e5e7eb;
  --muted: #9ca3af;
  --accent: #22d3ee;
  --accent-2: #3b82f6;
  --hot: #ef4444;
  --radius: 12px;
  --mono: ui-monospace, SFMono-Regular, Menlo, Consolas, monospace;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  min-height: 100vh;
  background: radial-gradient(circle at 20% 0%, var(--bg-2), var(--bg) 60%);
  color: var(--text);
  font-family: system-ui, -apple-system, "Segoe UI", Roboto, sans-serif;
  line-height: 1.6;
}

a { color: var(--accent); text-decoration: none; }
a:hover { text-decoration: underline; }

#neural-canvas {
  position: fixed;
  inset: 0;
  z-index: -2;
  pointer-events: none;
}

/* liquid-glass blobs, blurred together by the SVG goo filter */
.liquid-glass {
  position: fixed;
  inset: 0;
  z-index: -3;
  overflow: hidden;
  pointer-events: none;
}

.liquid-glass svg { width: 100%; height: 100%; }

.blob {
  transform-box: fill-box;
  transform-origin: center;
  animation: blob 7s infinite;
}

.blob-delay-2 { animation-delay: 2s; }
.blob-delay-4 { animation-delay: 4s; }

@keyframes blob {
  0% { transform: translate(0, 0) scale(1); }
  33% { transform: translate(30px, -50px) scale(1.1); }
  66% { transform: translate(-20px, 20px) scale(0.9); }
  100% { transform: translate(0, 0) scale(1); }
}

@media (prefers-reduced-motion: reduce) { .blob { animation: none; } }

.sudoku-grid {
  position: fixed;
  top: 50%;
  right: 4vw;
  transform: translateY(-50%);
  z-index: -1;
  display: grid;
  grid-template-columns: repeat(9, 2.2rem);
  gap: 2px;
  font-family: var(--mono);
}

.sudoku-cell {
  width: 2.2rem;
  height: 2.2rem;
  display: flex;
  align-items: center;
  justify-content: center;
  color: var(--accent);
  border: 1px solid rgba(34, 211, 238, 0.08);
  opacity: 0.08;
  transition: opacity 0.4s, background 0.4s, transform 0.4s;
}
.sudoku-cell.highlight { background: rgba(34, 211, 238, 0.08); }
.sudoku-cell.learning { color: #a78bfa; }
.sudoku-cell.celebrating { transform: scale(1.15); background: rgba(34, 211, 238, 0.2); opacity: 0.9 !important; }

.navbar {
  position: sticky;
  top: 0;
  z-index: 10;
  display: flex;
  justify-content: space-between;
  align-items: center;
  padding: 1rem 2rem;
  background: rgba(11, 16, 32, 0.7);
  backdrop-filter: blur(12px);
  border-bottom: 1px solid var(--border);
}
.brand { font-family: var(--mono); font-weight: 700; color: var(--text); }
.nav-links a { margin-left: 1.5rem; color: var(--muted); }
.nav-links a.active, .nav-links a:hover { color: var(--accent); text-decoration: none; }

.container { max-width: 1100px; margin: 0 auto; padding: 2rem 1.5rem 4rem; }
.footer { text-align: center; color: var(--muted); padding: 2rem; border-top: 1px solid var(--border); }

.section { margin: 3rem 0; }
.section-head { display: flex; justify-content: space-between; align-items: baseline; }
.page-header { text-align: center; margin-bottom: 2rem; }
.page-header h1 { font-size: 2.8rem; margin-bottom: 0.5rem; }
.muted { color: var(--muted); }
.capitalize { text-transform: capitalize; }

.hero { padding: 4rem 0 2rem; }
.hero-hello { color: var(--accent); font-family: var(--mono); font-size: 1.1rem; }
.hero h1 { font-family: var(--mono); font-size: clamp(2.5rem, 7vw, 4.5rem); margin: 0.25rem 0; }
.hero-title { color: var(--accent); font-size: 1.5rem; margin: 0 0 1rem; }
.hero-bio { max-width: 40rem; color: rgba(229, 231, 235, 0.8); }
.hero-actions { display: flex; gap: 1rem; margin: 1.5rem 0; flex-wrap: wrap; }
.social a { margin-right: 1.25rem; color: var(--muted); }

.grid { display: grid; gap: 1.5rem; grid-template-columns: repeat(auto-fill, minmax(300px, 1fr)); }
.about-grid { display: grid; gap: 1.5rem; grid-template-columns: 2fr 1fr; }
@media (max-width: 760px) { .about-grid { grid-template-columns: 1fr; } .sudoku-grid { display: none; } }

.panel, .card {
  position: relative;
  background: var(--panel);
  border: 1px solid var(--border);
  border-radius: var(--radius);
  padding: 1.5rem;
  backdrop-filter: blur(6px);
}
.panel h3, .card h3 { margin-top: 0; color: var(--accent); }
.panel h4 { margin: -0.5rem 0 0.25rem; }
.timeline-item { margin-bottom: 1rem; }
.stats .stat { display: flex; justify-content: space-between; padding: 0.4rem 0; border-bottom: 1px solid var(--border); }
.stats strong { color: var(--accent); }

.card { transition: transform 0.3s, background 0.3s, box-shadow 0.3s; }
.card:hover { transform: translateY(-4px); background: var(--panel-hover); box-shadow: 0 12px 30px rgba(59, 130, 246, 0.1); }
.card-hot { box-shadow: 0 0 0 2px rgba(239, 68, 68, 0.3); }
.card-link { color: inherit; display: block; }
.card-link:hover { text-decoration: none; }
.card-link:hover h3 { color: #93c5fd; }
.card h3 { color: var(--text); }
.card-cover { width: 100%; height: 12rem; object-fit: cover; border-radius: 8px; margin-bottom: 1rem; }
.card-summary { color: rgba(229, 231, 235, 0.8); display: -webkit-box; -webkit-line-clamp: 3; -webkit-box-orient: vertical; overflow: hidden; }
.card-more { display: inline-block; margin-top: 0.75rem; font-size: 0.9rem; color: #60a5fa; }
.card-more-hot { color: #f87171; }
.hot-badge {
  position: absolute;
  top: 1rem;
  right: 1rem;
  padding: 0.15rem 0.6rem;
  border-radius: 999px;
  font-size: 0.75rem;
  font-weight: 600;
  background: rgba(239, 68, 68, 0.2);
  color: #fca5a5;
  border: 1px solid rgba(239, 68, 68, 0.4);
  animation: hot-pulse 2s ease-in-out infinite;
}
@keyframes hot-pulse { 50% { box-shadow: 0 0 12px rgba(239, 68, 68, 0.5); } }

.post-meta { display: flex; flex-wrap: wrap; gap: 0.75rem; color: var(--muted); font-size: 0.85rem; }
.post-meta > * + *::before { content: "\00b7"; margin-right: 0.75rem; }

.tags { display: flex; flex-wrap: wrap; gap: 0.5rem; margin-top: 0.75rem; align-items: center; }
.tags-more { font-size: 0.75rem; color: var(--muted); }
.tag-pill {
  display: inline-block;
  padding: 0.2rem 0.75rem;
  border-radius: 999px;
  font-size: 0.85rem;
  background: rgba(255, 255, 255, 0.1);
  color: #d1d5db;
  transition: background 0.2s;
}
.tag-pill:hover { background: rgba(255, 255, 255, 0.2); text-decoration: none; }
.tag-pill.active { background: var(--accent-2); color: #fff; }
.tag-sm { font-size: 0.75rem; padding: 0.1rem 0.6rem; }

.blog-controls { display: flex; gap: 0.75rem; justify-content: center; flex-wrap: wrap; margin-bottom: 1rem; }
.blog-controls input, .blog-controls select, .chat-form input {
  padding: 0.6rem 1rem;
  background: rgba(255, 255, 255, 0.1);
  border: 1px solid rgba(255, 255, 255, 0.2);
  border-radius: 8px;
  color: var(--text);
}
.blog-controls input { min-width: min(24rem, 100%); }
.tag-filter { display: flex; flex-wrap: wrap; gap: 0.5rem; justify-content: center; align-items: center; }
.empty { text-align: center; padding: 3rem 0; color: var(--muted); }

button, .button-ghost {
  display: inline-block;
  padding: 0.6rem 1.2rem;
  border-radius: 8px;
  border: 1px solid rgba(255, 255, 255, 0.2);
  background: rgba(255, 255, 255, 0.08);
  color: var(--text);
  font: inherit;
  cursor: pointer;
}
button:hover, .button-ghost:hover { background: rgba(255, 255, 255, 0.16); text-decoration: none; }
button:disabled { opacity: 0.5; cursor: default; }

.pagination { display: flex; justify-content: center; gap: 0.5rem; margin-top: 2rem; }
.pagination a { padding: 0.4rem 0.8rem; border-radius: 6px; border: 1px solid var(--border); }
.pagination a.active { background: var(--accent-2); color: #fff; border-color: var(--accent-2); }

.post { max-width: 760px; margin: 0 auto; }
.post h1 { font-size: 2.5rem; line-height: 1.2; }
.post-cover { width: 100%; max-height: 24rem; object-fit: cover; border-radius: var(--radius); margin-top: 1rem; }
.back-link { display: inline-block; margin-bottom: 1rem; }
.share-button { margin: 1.5rem 0; }
.prose { font-size: 1.05rem; }
.prose h2, .prose h3 { margin-top: 2rem; }
.prose pre { padding: 1rem; border-radius: 8px; overflow-x: auto; }
.prose code { font-family: var(--mono); font-size: 0.9em; }
.prose :not(pre) > code { background: rgba(255, 255, 255, 0.1); padding: 0.1rem 0.35rem; border-radius: 4px; }
.prose blockquote { border-left: 3px solid var(--accent); margin-left: 0; padding-left: 1rem; color: var(--muted); }
.prose table { border-collapse: collapse; width: 100%; }
.prose th, .prose td { border: 1px solid var(--border); padding: 0.4rem 0.75rem; }
.prose img { max-width: 100%; border-radius: 8px; }

.resume-cta { display: inline-flex; align-items: center; gap: 0.5rem; font-weight: 500; transition: all 0.2s; }
.resume-cta:hover { text-decoration: none; }
.resume-cta-default {
  padding: 0.5rem 1rem;
  background: rgba(59, 130, 246, 0.2);
  color: #93c5fd;
  border: 1px solid rgba(59, 130, 246, 0.3);
  border-radius: 8px;
}
.resume-cta-default:hover { background: rgba(59, 130, 246, 0.3); box-shadow: 0 8px 20px rgba(59, 130, 246, 0.2); }
.resume-cta-minimal { color: #60a5fa; text-decoration: underline; text-decoration-color: rgba(96, 165, 250, 0.5); }
.resume-cta-prominent {
  padding: 0.75rem 1.5rem;
  background: linear-gradient(90deg, #3b82f6, #06b6d4);
  color: #fff;
  font-weight: 600;
  border-radius: var(--radius);
  box-shadow: 0 8px 20px rgba(0, 0, 0, 0.3);
}
.resume-cta-prominent:hover { transform: translateY(-2px); box-shadow: 0 12px 28px rgba(59, 130, 246, 0.25); }

.skill { margin-bottom: 0.75rem; }
.skill-label { display: flex; justify-content: space-between; font-size: 0.9rem; }
.skill-label span:last-child { color: var(--accent); }
.skill-bar { height: 6px; background: rgba(255, 255, 255, 0.1); border-radius: 999px; overflow: hidden; }
.skill-fill { height: 100%; background: linear-gradient(90deg, #06b6d4, #3b82f6); }
.project-links a { margin-right: 1rem; }

.resume h3 { border-bottom: 1px solid var(--border); padding-bottom: 0.25rem; margin-top: 2rem; }
.resume-item h4 { margin-bottom: 0; }
.contact { list-style: none; padding: 0; }

.error-page { text-align: center; padding: 5rem 0; }
.error-page h1 { font-size: 5rem; font-family: var(--mono); color: var(--accent); margin: 0; }

.chat { position: fixed; bottom: 1.5rem; right: 1.5rem; z-index: 20; }
.chat-toggle { width: 3.5rem; height: 3.5rem; border-radius: 50%; font-size: 1.5rem; padding: 0; background: linear-gradient(135deg, #06b6d4, #3b82f6); border: none; }
.chat-panel {
  position: absolute;
  bottom: 4.5rem;
  right: 0;
  width: min(22rem, calc(100vw - 3rem));
  height: 28rem;
  display: flex;
  flex-direction: column;
  background: rgba(17, 24, 49, 0.95);
  border: 1px solid var(--border);
  border-radius: var(--radius);
  overflow: hidden;
}
.chat-panel[hidden] { display: none; }
.chat-header { display: flex; justify-content: space-between; align-items: center; padding: 0.75rem 1rem; border-bottom: 1px solid var(--border); font-weight: 600; }
.chat-header button { padding: 0 0.5rem; border: none; background: none; font-size: 1.25rem; }
.chat-messages { flex: 1; overflow-y: auto; padding: 1rem; display: flex; flex-direction: column; gap: 0.5rem; }
.chat-msg { max-width: 85%; padding: 0.5rem 0.75rem; border-radius: 10px; font-size: 0.9rem; white-space: pre-wrap; }
.chat-bot { align-self: flex-start; background: rgba(255, 255, 255, 0.08); }
.chat-visitor { align-self: flex-end; background: rgba(59, 130, 246, 0.35); }
.chat-msg.typing { color: var(--muted); font-style: italic; }
.chat-form { display: flex; gap: 0.5rem; padding: 0.75rem; border-top: 1px solid var(--border); }
.chat-form input { flex: 1; }
`

// jsContent is served as /static/app.js. It wires the share button, the
// offline blog filter, the chat widget and the background effects.
const jsContent = `(function () {
  'use strict';

  var body = document.body;
  var live = body.dataset.live === 'true';
  var wsBase = (location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host;

  function $(id) { return document.getElementById(id); }

  document.querySelectorAll('.share-button').forEach(function (btn) {
    btn.addEventListener('click', function () {
      var url = btn.dataset.shareUrl;
      if (navigator.share) {
        navigator.share({ title: btn.dataset.shareTitle, url: url }).catch(function () {});
        return;
      }
      if (navigator.clipboard) {
        navigator.clipboard.writeText(url).then(function () {
          btn.textContent = 'Link copied';
          setTimeout(function () { btn.textContent = 'Share'; }, 2000);
        });
      }
    });
  });

  // Exported pages have no server behind the search form; filter the
  // cards already on the page instead.
  var searchForm = $('blog-search');
  if (searchForm && !live) {
    var input = searchForm.querySelector('input[name=q]');
    var sort = searchForm.querySelector('select[name=sort]');
    if (sort) sort.hidden = true;
    var filter = function () {
      var q = input.value.trim().toLowerCase();
      var shown = 0;
      document.querySelectorAll('.card[data-search]').forEach(function (card) {
        var match = !q || card.dataset.search.indexOf(q) !== -1;
        card.hidden = !match;
        if (match) shown++;
      });
      var count = $('post-count');
      if (count) count.textContent = shown + (shown === 1 ? ' post' : ' posts');
    };
    searchForm.addEventListener('submit', function (e) { e.preventDefault(); filter(); });
    input.addEventListener('input', filter);
  }

  if (live) initChat();
  if (body.dataset.effects === 'true') initEffects();

  function initChat() {
    var toggle = $('chat-toggle'), panel = $('chat-panel'), form = $('chat-form');
    var input = $('chat-input'), list = $('chat-messages');
    if (!toggle) return;

    var ws = null, sessionId = '', started = false, typing = null;

    function add(cls, text) {
      var div = document.createElement('div');
      div.className = 'chat-msg ' + cls;
      div.textContent = text;
      list.appendChild(div);
      list.scrollTop = list.scrollHeight;
      return div;
    }

    function welcome(text) {
      if (!list.childElementCount) add('chat-bot', text);
    }

    function reply(text) {
      setTimeout(function () {
        if (typing) { typing.remove(); typing = null; }
        add('chat-bot', text);
        input.disabled = false;
        input.focus();
      }, 600);
    }

    function fallbackWelcome() {
      fetch('/api/chat/welcome').then(function (r) { return r.json(); })
        .then(function (d) { welcome(d.welcome); }).catch(function () {});
    }

    function connect() {
      try {
        ws = new WebSocket(wsBase + '/ws/chat');
      } catch (e) {
        ws = null;
        fallbackWelcome();
        return;
      }
      ws.onmessage = function (ev) {
        var msg = JSON.parse(ev.data);
        if (msg.session_id) sessionId = msg.session_id;
        if (msg.type === 'welcome') welcome(msg.content);
        else reply(msg.content);
      };
      ws.onclose = function () {
        ws = null;
        fallbackWelcome();
      };
    }

    toggle.addEventListener('click', function () {
      panel.hidden = !panel.hidden;
      if (!panel.hidden) {
        if (!started) { started = true; connect(); }
        input.focus();
      }
    });
    $('chat-close').addEventListener('click', function () { panel.hidden = true; });

    form.addEventListener('submit', function (e) {
      e.preventDefault();
      var text = input.value.trim();
      if (!text || input.disabled) return;
      add('chat-visitor', text);
      input.value = '';
      input.disabled = true;
      typing = add('chat-bot typing', 'typing...');

      var payload = JSON.stringify({ session_id: sessionId, content: text });
      if (ws && ws.readyState === WebSocket.OPEN) {
        ws.send(payload);
        return;
      }
      fetch('/api/chat', { method: 'POST', headers: { 'Content-Type': 'application/json' }, body: payload })
        .then(function (r) { return r.json(); })
        .then(function (d) {
          if (d.session_id) sessionId = d.session_id;
          reply(d.reply || d.error);
        })
        .catch(function () { reply('Sorry, I could not reach the server.'); });
    });
  }

  function initEffects() {
    var canvas = $('neural-canvas'), grid = $('sudoku-grid');
    if (!canvas || !grid) return;
    var ctx = canvas.getContext('2d');

    var cells = [];
    for (var i = 0; i < 81; i++) {
      var cell = document.createElement('div');
      cell.className = 'sudoku-cell';
      cell.dataset.row = Math.floor(i / 9);
      cell.dataset.col = i % 9;
      grid.appendChild(cell);
      cells.push(cell);
    }

    var ws = new WebSocket(wsBase + '/ws/effects');
    function send(msg) {
      if (ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify(msg));
    }

    function resize() {
      canvas.width = window.innerWidth;
      canvas.height = window.innerHeight;
      send({ type: 'resize', width: window.innerWidth, height: window.innerHeight });
    }
    ws.onopen = resize;
    window.addEventListener('resize', resize);

    var lastY = window.scrollY, lastT = performance.now();
    window.addEventListener('scroll', function () {
      var now = performance.now();
      var velocity = (window.scrollY - lastY) / Math.max(now - lastT, 1) * 16;
      lastY = window.scrollY;
      lastT = now;
      send({ type: 'scroll', velocity: velocity });
    }, { passive: true });

    grid.addEventListener('mouseover', function (e) {
      var d = e.target.dataset;
      if (d && d.row !== undefined) send({ type: 'hover', row: +d.row, col: +d.col });
    });
    grid.addEventListener('mouseleave', function () { send({ type: 'hover_end' }); });

    if ('IntersectionObserver' in window) {
      var observer = new IntersectionObserver(function (entries) {
        entries.forEach(function (en) {
          if (en.isIntersecting) send({ type: 'intersect' });
        });
      }, { threshold: 0.3 });
      document.querySelectorAll('[data-section]').forEach(function (s) { observer.observe(s); });
    }

    ws.onmessage = function (ev) {
      var f = JSON.parse(ev.data);
      if (f.type === 'frame') draw(f);
    };

    function line(a, b) {
      ctx.beginPath();
      ctx.moveTo(a.x, a.y);
      ctx.lineTo(b.x, b.y);
      ctx.stroke();
    }

    function draw(f) {
      ctx.clearRect(0, 0, canvas.width, canvas.height);

      ctx.lineWidth = 1;
      ctx.strokeStyle = 'rgba(34, 211, 238, 0.08)';
      f.edges.forEach(function (e) { line(f.nodes[e[0]], f.nodes[e[1]]); });

      f.links.forEach(function (l) {
        var a = f.nodes[l.from], b = f.nodes[l.to];
        var alpha = l.intensity * Math.sin(Math.PI * l.progress);
        ctx.lineWidth = 2;
        ctx.strokeStyle = 'rgba(56, 189, 248, ' + alpha + ')';
        line(a, b);
        ctx.fillStyle = 'rgba(165, 243, 252, ' + alpha + ')';
        ctx.beginPath();
        ctx.arc(a.x + (b.x - a.x) * l.progress, a.y + (b.y - a.y) * l.progress, 3, 0, Math.PI * 2);
        ctx.fill();
      });

      f.nodes.forEach(function (n) {
        ctx.fillStyle = 'rgba(103, 232, 249, ' + (0.4 + 0.3 * Math.sin(n.pulse)) + ')';
        ctx.beginPath();
        ctx.arc(n.x, n.y, 2.5 + Math.sin(n.pulse), 0, Math.PI * 2);
        ctx.fill();
      });

      for (var r = 0; r < 9; r++) {
        for (var c = 0; c < 9; c++) {
          var data = f.cells[r][c], el = cells[r * 9 + c];
          el.textContent = data.v || '';
          el.style.opacity = data.v ? 0.15 + 0.6 * data.c : 0.08;
          el.classList.toggle('learning', !!data.l);
          el.classList.toggle('celebrating', !!data.x);
          el.classList.toggle('highlight', r === f.highlight_row || c === f.highlight_col);
        }
      }
    }
  }
})();
`

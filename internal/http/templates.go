package http

// pageTpl holds every page; each is selected by name with ExecuteTemplate.
const pageTpl = `
{{define "head"}}<!doctype html>
<html lang="ko">
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>{{.}}</title>
<style>
body{font-family:system-ui,-apple-system,Segoe UI,Roboto,sans-serif;max-width:1240px;margin:0 auto;padding:1rem;color:#132333}
a{color:inherit}
.btn{display:inline-block;padding:.8rem 1.4rem;border-radius:12px;border:2px solid #000;background:#000;color:#fff;text-decoration:none;font-weight:600;text-align:center}
.btn.outline{background:rgba(255,255,255,.5)}
.card{border:1px solid #ddd;border-radius:16px;padding:3rem;margin:2rem auto;max-width:720px}
.center{text-align:center}
.muted{color:#666}
.spinner{width:48px;height:48px;border-radius:50%;border-bottom:2px solid #132333;margin:0 auto 1rem;animation:spin 1s linear infinite}
@keyframes spin{to{transform:rotate(360deg)}}
.hero{display:grid;grid-template-columns:1fr 1fr;gap:2rem;align-items:center;margin-bottom:4rem}
.hero img{max-width:100%}
.grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(280px,1fr));gap:2rem}
.game{position:relative;border:2px solid;border-radius:16px;padding:1.5rem;display:flex;flex-direction:column;gap:1rem;max-width:460px}
.game img{width:100%;aspect-ratio:4/3;object-fit:contain}
.game h3{text-align:center;font-size:1.6rem;margin:0}
.ribbon{position:absolute;left:50%;top:-.8rem;transform:translateX(-50%);background:#fff;border:2px solid;border-radius:999px;padding:.2rem .8rem;font-size:.7rem;font-weight:600}
.tag{display:inline-flex;padding:.25rem .6rem;border-radius:999px;font-size:11px;font-weight:500;color:#fff}
.archive header{border-bottom:1px solid rgba(0,0,0,.1);margin-bottom:2rem;padding-bottom:1rem}
.archive h1{font-family:serif;font-size:3rem;margin:0}
.counter{text-align:center;font-size:.9rem;opacity:.8}
.carousel{display:flex;align-items:center;gap:1rem;max-width:56rem;margin:0 auto}
.carousel form{flex:0 0 auto}
.carousel button{width:2.5rem;height:2.5rem;border-radius:50%;border:0;background:rgba(255,255,255,.4);cursor:pointer}
.carousel button:disabled{opacity:.3;cursor:not-allowed}
.item{flex:1;display:flex;gap:1.2rem;align-items:center;padding:1.4rem;border:1px solid;border-radius:16px;text-decoration:none;min-height:120px;box-shadow:0 8px 24px rgba(0,0,0,.12)}
.thumb{width:88px;height:112px;border-radius:12px;border:1px solid rgba(0,0,0,.25);display:flex;align-items:center;justify-content:center}
.thumb img{max-width:100%;max-height:100%}
.badge{display:inline-block;margin-bottom:.6rem;padding:.25rem .6rem;border-radius:999px;border:1px solid;font-size:12px}
.item h3{margin:0;font-size:1.2rem}
.cta{margin-top:3rem;text-align:center}
.top{position:fixed;right:2rem;bottom:2rem;width:3rem;height:3rem;border-radius:50%;border:0;color:#fff;cursor:pointer}
.hidden{display:none}
@media (max-width:768px){.hero{grid-template-columns:1fr}}
</style>
{{end}}

{{define "hub"}}{{template "head" .Title}}
<meta name="description" content="{{.Description}}" />
<meta property="og:title" content="{{.Title}}" />
<section class="hero">
  <div>{{if .HeroImage}}<img src="{{.HeroImage}}" alt="{{.Heading}}">{{end}}</div>
  <div>
    <h1>{{.Heading}}</h1>
    <p>{{safeHTML .Tagline}}</p>
  </div>
</section>
<section class="grid">
{{range .Cards}}
  <article class="game" style="background:{{css .Game.SolidBgColor}};border-color:{{css .Game.Color}}">
    {{if .Game.IsNew}}<span class="ribbon" style="border-color:{{css .Game.Color}};color:{{css .Game.Color}}">NEW</span>{{end}}
    {{if .Game.Image}}<img src="{{.Game.Image}}" alt="{{.Game.Title}} illustration" loading="lazy">{{end}}
    <h3>{{.Game.Title}}</h3>
    <div class="center"><span class="tag" style="background:{{css (tagColor .Game.Slug)}}">{{.Game.Subtitle}}</span></div>
    <a class="btn" href="{{.PlayHref}}" aria-label="Play {{.Game.Title}}">Play</a>
    <a class="btn outline" href="{{.ArchiveHref}}" style="border-color:{{css .Game.Color}};color:{{css .Game.Color}}" aria-label="View {{.Game.Title}} archive">Archive</a>
  </article>
{{end}}
</section>
{{end}}

{{define "archiveCard"}}
<a class="item" href="{{.Current.Href}}" style="border-color:{{css .Game.Theme.Accent}};background:{{css .Game.Theme.ListBg}}">
  <div class="thumb" style="background:{{css .Game.Theme.CardBg}}">{{if .Game.Image}}<img src="{{.Game.Image}}" alt="{{.Game.Slug}} woodcut thumbnail" loading="lazy">{{end}}</div>
  <div>
    <span class="badge" style="color:{{css .Game.Theme.Accent}};border-color:{{css .Game.Theme.Accent}}">{{if .Current.IsToday}}오늘의 퀴즈{{else}}{{.Current.QuestionCount}}문제{{end}}</span>
    <h3>{{.Current.Label}}</h3>
  </div>
</a>
{{end}}

{{define "archive"}}{{template "head" .Game.Title}}
{{if eq .State "loading"}}
<meta http-equiv="refresh" content="1" />
<div class="card center" role="status">
  <div class="spinner"></div>
  <p class="muted">로딩 중...</p>
</div>
{{else if eq .State "empty"}}
<div class="card center">
  <p class="muted">아카이브 데이터가 없습니다.</p>
  <a class="btn" href="{{.BackHref}}" onclick="if(history.length>1){history.back();return false}">돌아가기</a>
</div>
{{else}}
<div class="archive" style="background:{{css .Game.Theme.PageBg}}">
  <header>
    <h1>ARCHIVE</h1>
    <p>{{.Game.Title}}</p>
  </header>
  <p class="counter" id="counter">{{inc .Index}} / {{.Total}}</p>
  <div class="carousel">
    <form method="post" action="{{.PrevAction}}"><button type="submit" aria-label="이전"{{if not .CanPrev}} disabled{{end}}>&lsaquo;</button></form>
    {{template "archiveCard" .}}
    <form method="post" action="{{.NextAction}}"><button type="submit" aria-label="다음"{{if not .CanNext}} disabled{{end}}>&rsaquo;</button></form>
  </div>
  <button id="top" class="top{{if not .ScrollTop}} hidden{{end}}" style="background:{{css .Game.Theme.Accent}}" aria-label="맨 위로 가기" data-threshold="{{.Threshold}}" data-action="{{.ScrollAction}}">&uarr;</button>
  <div class="cta"><a class="btn" style="background:{{css .Game.Theme.Accent}};border-color:{{css .Game.Theme.Accent}}" href="{{.TodayHref}}">오늘의 퀴즈 하러가기</a></div>
</div>
<script>
(function(){
  var top = document.getElementById('top');
  if (!top) return;
  var action = top.getAttribute('data-action');
  var pending = false;
  window.addEventListener('scroll', function(){
    if (pending) return;
    pending = true;
    setTimeout(function(){
      var body = new URLSearchParams({offset: String(window.scrollY)});
      fetch(action, {method: 'POST', body: body, credentials: 'same-origin'})
        .then(function(r){ return r.json(); })
        .then(function(j){ top.classList.toggle('hidden', !j.showScrollTop); })
        .catch(function(){})
        .then(function(){ pending = false; });
    }, 150);
  });
  top.addEventListener('click', function(){ window.scrollTo({top: 0, behavior: 'smooth'}); });
})();
</script>
{{end}}
{{end}}

{{define "entry"}}{{template "head" .Game.Title}}
<div class="card center">
  <p class="muted">{{.Game.Title}}</p>
  <h1>{{.Label}}</h1>
  {{if .IsToday}}<p><span class="tag" style="background:{{css .Game.Color}}">오늘의 퀴즈</span></p>{{end}}
  <p><a href="{{.ArchiveHref}}">Archive</a> · <a href="{{.HubHref}}">Games</a></p>
</div>
{{end}}
`

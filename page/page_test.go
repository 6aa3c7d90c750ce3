package page

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/glass"
	"github.com/gogpu/glass/contrast"
	"github.com/gogpu/glass/frame"
)

const sitePage = `<!DOCTYPE html>
<html>
<head><title>Site</title></head>
<body>
<nav id="nav" style="position: fixed; top: 0">
  <a class="logo">Brand</a>
  <span class="logo-slogan">Slogan</span>
  <button onclick="openMainMenu()">Menu</button>
  <button onclick="openSearchMenu()">Search</button>
</nav>
<section class="background_nav" style="background-color: rgb(12, 14, 40); height: 600px"></section>
<main class="content" style="background: #fafafa url(bg.png) no-repeat"></main>
<footer bgcolor="#111111"></footer>
</body>
</html>`

func mustParse(t *testing.T, html string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(html), "#nav")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func mustEffect(t *testing.T) *glass.Effect {
	t.Helper()
	eff, err := glass.NewEffect()
	if err != nil {
		t.Fatalf("NewEffect() error = %v", err)
	}
	return eff
}

func TestDocument_AttachFilter(t *testing.T) {
	doc := mustParse(t, sitePage)
	eff := mustEffect(t)

	if err := eff.Install(doc); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	if n := doc.Selection("#liquid-glass-svg").Length(); n != 1 {
		t.Fatalf("container count = %d, want 1", n)
	}
	if n := doc.Selection("#liquid-glass-svg filter#liquid-glass-filter").Length(); n != 1 {
		t.Errorf("filter count = %d, want 1", n)
	}

	style, _ := doc.Selection("#nav").Attr("style")
	if !strings.Contains(style, "backdrop-filter: url(#liquid-glass-filter);") {
		t.Errorf("nav style = %q, want backdrop-filter set", style)
	}
	if !strings.Contains(style, "position: fixed;") {
		t.Errorf("nav style = %q, existing declarations lost", style)
	}

	// Installing again replaces the container instead of duplicating it.
	if err := eff.Install(doc); err != nil {
		t.Fatalf("second Install() error = %v", err)
	}
	if n := doc.Selection("#liquid-glass-svg").Length(); n != 1 {
		t.Errorf("container count after reinstall = %d, want 1", n)
	}
	style, _ = doc.Selection("#nav").Attr("style")
	if strings.Count(style, "backdrop-filter") != 1 {
		t.Errorf("nav style = %q, want a single backdrop-filter", style)
	}
}

func TestDocument_DetachFilter(t *testing.T) {
	doc := mustParse(t, `<html><body><nav id="nav"></nav></body></html>`)
	eff := mustEffect(t)

	if err := eff.Install(doc); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if err := eff.Uninstall(doc); err != nil {
		t.Fatalf("Uninstall() error = %v", err)
	}

	if n := doc.Selection("#liquid-glass-svg").Length(); n != 0 {
		t.Errorf("container count = %d, want 0", n)
	}
	if _, ok := doc.Selection("#nav").Attr("style"); ok {
		t.Error("nav style attribute left behind")
	}

	if err := eff.Uninstall(doc); err != nil {
		t.Errorf("second Uninstall() error = %v, want nil", err)
	}
}

func TestDocument_AttachFilterErrors(t *testing.T) {
	eff := mustEffect(t)

	doc := mustParse(t, `<html><body><header></header></body></html>`)
	if err := doc.AttachFilter(eff.Filter); !errors.Is(err, ErrNavNotFound) {
		t.Errorf("AttachFilter() without nav = %v, want ErrNavNotFound", err)
	}
}

func TestDocument_RenderKeepsFilter(t *testing.T) {
	doc := mustParse(t, sitePage)
	if err := mustEffect(t).Install(doc); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	html, err := doc.HTML()
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	for _, want := range []string{"<feImage", "<feDisplacementMap", `xChannelSelector="R"`, "data:image/png;base64,"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %s", want)
		}
	}
}

func TestDocument_Background(t *testing.T) {
	doc := mustParse(t, sitePage)

	tests := []struct {
		sel  string
		want string
		ok   bool
	}{
		{".background_nav", "rgb(12, 14, 40)", true},
		{".content", "#fafafa", true},
		{"footer", "#111111", true},
		{"#nav", "", false},
		{".missing", "", false},
	}
	for _, tt := range tests {
		got, ok := doc.Background(tt.sel)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Background(%q) = %q, %v; want %q, %v", tt.sel, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDocument_BackgroundShorthandFunctions(t *testing.T) {
	doc := mustParse(t, `<html><body>
<div class="img" style="background: url(red.png) no-repeat"></div>
<div class="quoted" style="background: url('navy/tile.png') repeat-x"></div>
<div class="grad" style="background: linear-gradient(red, blue)"></div>
<div class="after" style="background: url(red.png) center / cover, rgb(1, 2, 3)"></div>
</body></html>`)

	tests := []struct {
		sel  string
		want string
		ok   bool
	}{
		{".img", "", false},
		{".quoted", "", false},
		{".grad", "", false},
		{".after", "rgb(1, 2, 3)", true},
	}
	for _, tt := range tests {
		got, ok := doc.Background(tt.sel)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Background(%q) = %q, %v; want %q, %v", tt.sel, got, ok, tt.want, tt.ok)
		}
	}
}

func TestShorthandTokens(t *testing.T) {
	got := shorthandTokens("#fafafa url(a b.png)  no-repeat, rgba(0, 0, 0, 0.5)")
	want := []string{"#fafafa", "url(a b.png)", "no-repeat", "rgba(0, 0, 0, 0.5)"}
	if len(got) != len(want) {
		t.Fatalf("shorthandTokens() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
	if got := shorthandTokens("   "); len(got) != 0 {
		t.Errorf("shorthandTokens(blank) = %q, want none", got)
	}
}

func TestDocument_ApplyContrast(t *testing.T) {
	doc := mustParse(t, sitePage)

	if err := doc.ApplyContrast("#nav button", contrast.Dark); err != nil {
		t.Fatalf("ApplyContrast() error = %v", err)
	}
	if err := doc.ApplyContrast("#nav button", contrast.Light); err != nil {
		t.Fatalf("ApplyContrast() error = %v", err)
	}

	buttons := doc.Selection("#nav button")
	if buttons.Length() != 2 {
		t.Fatalf("buttons = %d, want 2", buttons.Length())
	}
	if !buttons.Eq(1).HasClass("contrast-light") || buttons.Eq(1).HasClass("contrast-dark") {
		t.Error("button classes not switched to contrast-light")
	}

	if err := doc.ApplyContrast(".nope", contrast.Dark); !errors.Is(err, ErrElementNotFound) {
		t.Errorf("ApplyContrast(.nope) = %v, want ErrElementNotFound", err)
	}
}

func testLayout() *Layout {
	return &Layout{
		Boxes: map[string]contrast.Rect{
			"#nav":              {Width: 1200, Height: 80},
			"#nav .logo":        {X: 20, Y: 20, Width: 100, Height: 40},
			"#nav .logo-slogan": {X: 140, Y: 20, Width: 200, Height: 40},
			"#nav button":       {X: 1100, Y: 20, Width: 40, Height: 40},
			".background_nav":   {Width: 1200, Height: 600},
			".content":          {Y: 600, Width: 1200, Height: 2000},
			"footer":            {Y: 2600, Width: 1200, Height: 400},
		},
	}
}

func TestGeometry_ContrastAcrossPage(t *testing.T) {
	doc := mustParse(t, sitePage)
	layout := testLayout()
	geom := NewGeometry(layout, doc)
	loop := frame.NewLoop()
	w := contrast.NewWatcher(contrast.NewSelector(geom), doc, loop)

	if c, err := w.RecolorNow(); err != nil || c != contrast.Light {
		t.Fatalf("RecolorNow() = %s, %v; want %s", c, err, contrast.Light)
	}

	fixed := []string{"#nav", "#nav .logo", "#nav .logo-slogan", "#nav button"}
	layout.SetScrollY(1000, fixed...)
	for range 10 {
		w.Notify()
	}
	loop.Flush()

	if w.Passes() != 2 || w.Last() != contrast.Dark {
		t.Errorf("after scroll: passes=%d last=%s, want 2 %s", w.Passes(), w.Last(), contrast.Dark)
	}
	if !doc.Selection("#nav .logo").HasClass("contrast-dark") {
		t.Error("logo not switched to contrast-dark")
	}

	layout.SetScrollY(2700, fixed...)
	w.Notify()
	loop.Flush()
	if w.Last() != contrast.Light {
		t.Errorf("over footer: last=%s, want %s", w.Last(), contrast.Light)
	}
}

func TestGeometry_MissingElementsAndOverrides(t *testing.T) {
	doc := mustParse(t, `<html><body><nav id="nav"></nav></body></html>`)
	layout := testLayout()
	layout.Backgrounds = map[string]string{"#nav": "black"}
	geom := NewGeometry(layout, doc)

	if _, ok := geom.Bounds(".content"); ok {
		t.Error("Bounds(.content) found a box for an element missing from the document")
	}
	if _, ok := geom.Bounds("#nav"); !ok {
		t.Error("Bounds(#nav) = missing, want box")
	}
	if bg, ok := geom.Background("#nav"); !ok || bg != "black" {
		t.Errorf("Background(#nav) = %q, %v; want layout override", bg, ok)
	}

	// Missing regions degrade to a white background.
	if c := contrast.NewSelector(geom).Class(); c != contrast.Dark {
		t.Errorf("Class() = %s, want %s", c, contrast.Dark)
	}
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	data := `{"scrollY": 120, "boxes": {"#nav": {"x": 0, "y": 0, "width": 800, "height": 64}}}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	l, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("LoadLayout() error = %v", err)
	}
	if l.ScrollY != 120 || l.Boxes["#nav"].Height != 64 {
		t.Errorf("LoadLayout() = %+v", l)
	}

	if _, err := LoadLayout(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadLayout(missing) error = nil, want error")
	}
}

func TestStyleHelpers(t *testing.T) {
	s := setStyleValue("color: red; TOP: 0", "top", "4px")
	if s != "color: red; top: 4px;" {
		t.Errorf("setStyleValue() = %q", s)
	}
	if v, ok := styleValue(s, "color"); !ok || v != "red" {
		t.Errorf("styleValue(color) = %q, %v", v, ok)
	}
	if got := removeStyleValue(s, "color"); got != "top: 4px;" {
		t.Errorf("removeStyleValue() = %q", got)
	}
}

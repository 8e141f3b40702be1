package parser

import (
	"fmt"
	"strings"
	"testing"
)

func TestForFile_Dispatch(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"notes.txt", "*parser.TextParser"},
		{"README.md", "*parser.MarkdownParser"},
		{"guide.markdown", "*parser.MarkdownParser"},
		{"data.csv", "*parser.CSVParser"},
		{"page.html", "*parser.HTMLParser"},
		{"page.htm", "*parser.HTMLParser"},
		{"report.pdf", "*parser.PDFParser"},
		{"letter.docx", "*parser.DOCXParser"},
		{"REPORT.PDF", "*parser.PDFParser"},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename)
		if err != nil {
			t.Errorf("ForFile(%q) error: %v", tt.filename, err)
			continue
		}
		if got := fmt.Sprintf("%T", p); got != tt.want {
			t.Errorf("ForFile(%q) = %s, want %s", tt.filename, got, tt.want)
		}
	}
}

func TestForFile_UnsupportedExtension(t *testing.T) {
	if _, err := ForFile("binary.exe"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := ForFile("noextension"); err == nil {
		t.Error("expected error for missing extension")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("guide.pdf") {
		t.Error("expected .pdf supported")
	}
	if !IsSupportedExtension("GUIDE.PDF") {
		t.Error("expected extension check to be case-insensitive")
	}
	if IsSupportedExtension("binary.exe") {
		t.Error("expected .exe unsupported")
	}
}

func TestTextParser_SinglePage(t *testing.T) {
	content := "TRAVEL GUIDE\nNotes on the itinerary.\n"
	pages, err := (&TextParser{}).Parse(strings.NewReader(content), "guide.txt")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if pages[0].Number != 1 {
		t.Errorf("expected page number 1, got %d", pages[0].Number)
	}
	if !strings.Contains(pages[0].Text, "TRAVEL GUIDE") {
		t.Errorf("expected text preserved, got %q", pages[0].Text)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	pages, err := (&TextParser{}).Parse(strings.NewReader("  \n \n"), "empty.txt")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("expected no pages for blank input, got %d", len(pages))
	}
}

func TestCSVParser_HeaderValueLines(t *testing.T) {
	content := "city,cost\nNice,120\nParis,200\n"
	pages, err := (&CSVParser{}).Parse(strings.NewReader(content), "costs.csv")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	text := pages[0].Text
	if !strings.Contains(text, "city: Nice, cost: 120") {
		t.Errorf("expected header:value row lines, got %q", text)
	}
	if !strings.HasPrefix(text, "Headers: city, cost") {
		t.Errorf("expected leading header line, got %q", text)
	}
}

func TestCSVParser_PaginatesRows(t *testing.T) {
	var b strings.Builder
	b.WriteString("id,name\n")
	for i := 0; i < 45; i++ {
		fmt.Fprintf(&b, "%d,row%d\n", i, i)
	}
	pages, err := (&CSVParser{}).Parse(strings.NewReader(b.String()), "rows.csv")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages for 45 rows, got %d", len(pages))
	}
	for i, p := range pages {
		if p.Number != i+1 {
			t.Errorf("page %d: expected number %d, got %d", i, i+1, p.Number)
		}
		if !strings.HasPrefix(p.Text, "Headers: id, name") {
			t.Errorf("page %d: expected repeated header line", i)
		}
	}
}

func TestMarkdownParser_HeadingsOnOwnLines(t *testing.T) {
	content := "# Travel Tips\n\nPack light and plan ahead.\n\n## Budget\n\nTrack every expense daily.\n"
	pages, err := (&MarkdownParser{}).Parse(strings.NewReader(content), "tips.md")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	lines := strings.Split(pages[0].Text, "\n")
	if lines[0] != "Travel Tips" {
		t.Errorf("expected first heading as own line, got %q", lines[0])
	}
	found := false
	for _, l := range lines {
		if l == "Budget" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected Budget heading as own line, got %q", pages[0].Text)
	}
}

func TestHTMLParser_ExtractsContentBlocks(t *testing.T) {
	content := `<html><head><title>x</title><style>p{color:red}</style></head>
<body>
<nav>Menu items</nav>
<h1>Travel Tips</h1>
<p>Pack light and plan ahead.</p>
<ul><li>Book early</li></ul>
<script>alert(1)</script>
</body></html>`
	pages, err := (&HTMLParser{}).Parse(strings.NewReader(content), "tips.html")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	text := pages[0].Text
	for _, want := range []string{"Travel Tips", "Pack light and plan ahead.", "Book early"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in output, got %q", want, text)
		}
	}
	for _, reject := range []string{"Menu items", "alert(1)", "color:red"} {
		if strings.Contains(text, reject) {
			t.Errorf("expected %q stripped, got %q", reject, text)
		}
	}
}

func TestLoad_CarriesParseFailure(t *testing.T) {
	doc := Load(strings.NewReader("data"), "binary.exe")
	if doc.Err == nil {
		t.Fatal("expected Err set for unsupported file")
	}
	if doc.Name != "binary.exe" {
		t.Errorf("expected name kept, got %q", doc.Name)
	}
	if len(doc.Pages) != 0 {
		t.Errorf("expected no pages, got %d", len(doc.Pages))
	}
}

func TestLoad_ParsesSupportedFile(t *testing.T) {
	doc := Load(strings.NewReader("some text\n"), "notes.txt")
	if doc.Err != nil {
		t.Fatalf("unexpected error: %v", doc.Err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}
}

package pdf

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stub(out string) GenerateFunc {
	return func(ctx context.Context, data map[string]any, opts Options) ([]byte, error) {
		return []byte(out), nil
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register("team-report", stub("a"))
	r.Register("task-details", stub("b"))

	assert.True(t, r.Has("task-details"))
	assert.Equal(t, []string{"task-details", "team-report"}, r.Names())

	r.Register("task-details", stub("c"))
	out, err := r.Generate(context.Background(), "task-details", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, "c", string(out))

	_, err = r.Get("missing")
	var nf *TemplateNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, `Template "missing" not found`, err.Error())
	assert.Equal(t, []string{"task-details", "team-report"}, nf.Names)

	assert.True(t, r.Unregister("team-report"))
	assert.False(t, r.Unregister("team-report"))
	assert.False(t, r.Has("team-report"))
}

func TestRegistryGenerateErrors(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register("bad", func(ctx context.Context, data map[string]any, opts Options) ([]byte, error) {
		return nil, boom
	})

	_, err := r.Generate(context.Background(), "bad", nil, Options{})
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Generate(ctx, "bad", nil, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTMLToPlainText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"<p>Olá &amp; bem-vindo</p><p>Segundo</p>", "Olá & bem-vindo\n\nSegundo"},
		{"<h2>Título</h2><p>corpo</p>", "Título\ncorpo"},
		{"linha<br>outra<br/>fim", "linha\noutra\nfim"},
		{"<ul><li>um</li><li>dois</li></ul>", "• um\n• dois"},
		{"<script>alert(1)</script><style>p{}</style>texto", "texto"},
		{"<p>a    b\t\tc&nbsp;d</p>", "a b c d"},
		{"<p>a</p><p></p><p></p><p>b</p>", "a\n\nb"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTMLToPlainText(tt.in), tt.in)
	}
}

func TestSplitText(t *testing.T) {
	assert.Equal(t, []string{"curto"}, SplitText("curto", 10))

	paras := strings.Repeat("a", 6) + "\n\n" + strings.Repeat("b", 6) + "\n\n" + strings.Repeat("c", 2)
	assert.Equal(t, []string{"aaaaaa", "bbbbbb\n\ncc"}, SplitText(paras, 12))

	long := "um dois. tres quatro. cinco seis"
	assert.Equal(t, []string{"um dois.", "tres quatro.", "cinco seis"}, SplitText(long, 14))

	for _, chunk := range SplitText(strings.Repeat("frase curta. ", 300), DefaultChunkSize) {
		assert.LessOrEqual(t, len([]rune(chunk)), DefaultChunkSize+1)
	}
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "In Progress", FormatStatus("IN_PROGRESS"))
	assert.Equal(t, "Completed", FormatStatus("COMPLETED"))
	assert.Equal(t, "Unknown", FormatStatus(""))
	assert.Equal(t, "High", FormatPriority("HIGH"))
	assert.Equal(t, "Normal", FormatPriority(""))
	assert.Equal(t, "Ébano", Capitalize("ébano"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "abcdefg", Truncate("abcdefg", 7))
	assert.Equal(t, "abcd...", Truncate("abcdefgh", 7))
}

func TestVariants(t *testing.T) {
	assert.Equal(t, VariantSuccess, StatusVariant("COMPLETED"))
	assert.Equal(t, VariantPrimary, StatusVariant("IN_PROGRESS"))
	assert.Equal(t, VariantDanger, StatusVariant("CANCELLED"))
	assert.Equal(t, VariantSecondary, StatusVariant("PENDING"))
	assert.Equal(t, VariantDanger, PriorityVariant("URGENT"))
	assert.Equal(t, VariantWarning, PriorityVariant("HIGH"))
	assert.Equal(t, VariantPrimary, PriorityVariant("MEDIUM"))
	assert.Equal(t, VariantSecondary, PriorityVariant("LOW"))
}

func TestDocumentPageBreaks(t *testing.T) {
	d := NewDocument(Options{Title: "Relatório"})
	d.Footer("Gerado por teste", "")
	f := d.Fpdf()
	_, h := f.GetPageSize()

	one := d.Measure(func(d *Document) { d.Field("Nome", "valor") })
	two := d.Measure(func(d *Document) {
		d.Field("Nome", "valor")
		d.Field("Email", "valor")
	})
	assert.Greater(t, one, 0.0)
	assert.InDelta(t, 2*one, two, 0.01)

	f.SetY(h - pageBottom - one - 1)
	d.KeepTogether(one, func(d *Document) { d.Field("Cabe", "sim") })
	assert.Equal(t, 1, f.PageNo())

	f.SetY(h - pageBottom - one - 1)
	d.NoBreak(func(d *Document) {
		d.Field("Nome", "valor")
		d.Field("Email", "valor")
	})
	assert.Equal(t, 2, f.PageNo())

	d.MinPresenceAhead(10)
	assert.Equal(t, 2, f.PageNo())
	d.PageBreak()
	assert.Equal(t, 3, f.PageNo())

	out, err := d.Bytes()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestDocumentTableRepeatsOnNewPage(t *testing.T) {
	d := NewDocument(Options{})
	rows := make([][]string, 120)
	for i := range rows {
		rows[i] = []string{"Tarefa com um nome razoavelmente longo para quebrar linha", "Pendente"}
	}
	d.Table([]Column{{Header: "Nome", Width: 0.7}, {Header: "Status", Width: 0.3}}, rows)
	assert.Greater(t, d.Fpdf().PageNo(), 1)
	require.NoError(t, d.Err())
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.Gray{Y: 200})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFetchImage(t *testing.T) {
	data := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header()["Content-Type"] = nil
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	img, err := FetchImage(context.Background(), srv.URL+"/logo")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, data, img.Data)
	assert.True(t, strings.HasPrefix(img.DataURI(), "data:image/png;base64,"))

	_, err = FetchImage(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "Not Found")

	uri, err := ProcessImageURL(context.Background(), srv.URL+"/logo")
	require.NoError(t, err)
	assert.Equal(t, img.DataURI(), uri)

	local, err := ProcessImageURL(context.Background(), "/static/logo.png")
	require.NoError(t, err)
	assert.Equal(t, "/static/logo.png", local)

	d := NewDocument(Options{})
	y := d.Fpdf().GetY()
	require.NoError(t, d.Image(img, 80))
	assert.InDelta(t, y+40, d.Fpdf().GetY(), 0.01)
}

func TestImageRejectsUndecodableContent(t *testing.T) {
	d := NewDocument(Options{})
	err := d.Image(Image{Data: []byte("<html>login</html>"), ContentType: "image/png"}, 80)
	require.Error(t, err)
	require.NoError(t, d.Err())

	out, err := d.Bytes()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestIsExternalURL(t *testing.T) {
	assert.True(t, IsExternalURL("https://cdn.example.com/a.png"))
	assert.True(t, IsExternalURL("http://cdn.example.com/a.png"))
	assert.False(t, IsExternalURL("/local/a.png"))
	assert.False(t, IsExternalURL("data:image/png;base64,AAA"))
	assert.False(t, IsExternalURL("::nope"))
}

package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/semichord/pkg/cache"
	"github.com/matzehuels/semichord/pkg/config"
	"github.com/matzehuels/semichord/pkg/dataset"
	"github.com/matzehuels/semichord/pkg/errors"
	"github.com/matzehuels/semichord/pkg/observability"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"dot", false},
		{"json", false},
		{"graph", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	err := ValidateFormats([]string{"svg", "invalid"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Invalid format error = %v, want INVALID_FORMAT", err)
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestExtension(t *testing.T) {
	if got := Extension(FormatGraph); got != "graph.svg" {
		t.Errorf("Extension(graph) = %q", got)
	}
	if got := Extension(FormatPNG); got != "png" {
		t.Errorf("Extension(png) = %q", got)
	}
}

func TestOptionsValidateForLoad(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForLoad(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Missing input error = %v, want INVALID_INPUT", err)
	}

	opts = Options{DataPath: "a\x00b.json"}
	if err := opts.ValidateForLoad(); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("Bad path error = %v, want INVALID_PATH", err)
	}

	opts = Options{Records: []dataset.Record{}}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("In-memory records should pass: %v", err)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{DataPath: "data.json"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("size = %vx%v, want defaults", opts.Width, opts.Height)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}

	opts.Formats = []string{"bogus"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("Second validation should be a no-op: %v", err)
	}
}

func TestValidateForRenderRejectsNegativeScale(t *testing.T) {
	opts := Options{Scale: -1}
	if err := opts.ValidateForRender(); err == nil {
		t.Error("negative scale should fail")
	}
}

func records() []dataset.Record {
	return []dataset.Record{
		dataset.NewRecord(dataset.F("name", "A"), dataset.F("x", 10), dataset.F("y", 20)),
		dataset.NewRecord(dataset.F("name", "B"), dataset.F("x", 30), dataset.F("y", 0)),
	}
}

func TestExecuteInMemory(t *testing.T) {
	r := NewRunner(nil, observability.NoopPipelineHooks{})
	res, err := r.Execute(context.Background(), Options{
		Records:     records(),
		Config:      &config.Config{Radius: 120},
		Formats:     []string{FormatSVG, FormatDOT, FormatJSON, FormatPNG},
		Interactive: true,
		Title:       "demo",
		Scale:       1,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Stats.Records != 2 || res.Stats.Attributes != 2 {
		t.Errorf("stats = %+v, want 2 records and 2 attributes", res.Stats)
	}
	if res.Stats.Shapes != res.Chart.Elements().Surface().Len() {
		t.Errorf("Shapes = %d, want surface size", res.Stats.Shapes)
	}
	if res.Chart.Config().Radius != 120 {
		t.Errorf("Radius = %v, want 120", res.Chart.Config().Radius)
	}

	svg := string(res.Artifacts[FormatSVG])
	if !strings.Contains(svg, "<script") || !strings.Contains(svg, "<title>demo</title>") {
		t.Error("svg missing interaction script or title")
	}
	if got := strings.Count(string(res.Artifacts[FormatDOT]), "->"); got != 3 {
		t.Errorf("dot edges = %d, want 3", got)
	}
	if !bytes.HasPrefix(res.Artifacts[FormatJSON], []byte("{")) {
		t.Error("json artifact is not an object")
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact is not a PNG")
	}
}

func TestExecuteInteractiveDisabled(t *testing.T) {
	r := NewRunner(nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Records:     records(),
		Config:      &config.Config{DisableInteractions: true},
		Interactive: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if strings.Contains(string(res.Artifacts[FormatSVG]), "<script") {
		t.Error("script embedded although interactions are disabled")
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	loads, renders int
	lastRecords    int
}

func (h *countingHooks) OnLoadComplete(_ context.Context, _ string, n int, _ time.Duration, _ error) {
	h.loads++
	h.lastRecords = n
}

func (h *countingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.renders++
}

func TestExecuteFromFiles(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	cfgPath := filepath.Join(dir, "chart.toml")
	if err := os.WriteFile(data, []byte("name,x,y\nA,1,2\nB,3,4\nC,5,6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfgPath, []byte("radius = 90\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	hooks := &countingHooks{}
	r := NewRunner(nil, hooks)
	res, err := r.Execute(context.Background(), Options{
		DataPath:   data,
		ConfigPath: cfgPath,
		Attributes: []string{"name", "y"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if hooks.loads != 1 || hooks.lastRecords != 3 || hooks.renders != 1 {
		t.Errorf("hooks = %+v, want one load of 3 records and one render", hooks)
	}
	if res.Stats.Attributes != 1 {
		t.Errorf("Attributes = %d, want 1 (key excluded)", res.Stats.Attributes)
	}
	if res.Chart.Config().Radius != 90 {
		t.Errorf("Radius = %v, want 90 from config file", res.Chart.Config().Radius)
	}
}

func TestExecuteErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing file", Options{DataPath: filepath.Join(dir, "none.json")}, errors.ErrCodeFileNotFound},
		{"empty data", Options{DataPath: empty}, errors.ErrCodeInvalidData},
		{"no attributes", Options{Records: []dataset.Record{dataset.NewRecord(dataset.F("name", "A"))}}, errors.ErrCodeInvalidAttributes},
		{"bad format", Options{Records: records(), Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
	}
	r := NewRunner(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(context.Background(), tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

// mapCache is an in-memory cache counting its traffic.
type mapCache struct {
	data       map[string][]byte
	gets, sets int
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.gets++
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.sets++
	c.data[key] = data
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *mapCache) Close() error { return nil }

func TestExecuteCachesArtifacts(t *testing.T) {
	mc := &mapCache{data: map[string][]byte{}}
	r := NewRunner(nil, observability.NoopPipelineHooks{})
	r.Cache = mc

	opts := Options{
		Records: records(),
		Formats: []string{FormatSVG, FormatDOT, FormatPNG},
		Scale:   1,
	}
	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if mc.sets != 2 {
		t.Errorf("sets after first run = %d, want 2 (dot and png)", mc.sets)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if mc.sets != 2 {
		t.Errorf("sets after second run = %d, want no new writes", mc.sets)
	}
	for _, f := range []string{FormatDOT, FormatPNG} {
		if !bytes.Equal(first.Artifacts[f], second.Artifacts[f]) {
			t.Errorf("%s artifact differs between runs", f)
		}
	}
	if bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("svg carries the chart ID and should be rendered afresh")
	}

	opts.Scale = 2
	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	if mc.sets != 3 {
		t.Errorf("sets after scale change = %d, want 3 (png only)", mc.sets)
	}
}

func TestExecuteWithoutCache(t *testing.T) {
	tests := []struct {
		name  string
		store cache.Cache
	}{
		{"default", cache.Null},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(nil, observability.NoopPipelineHooks{})
			if r.Cache != cache.Null {
				t.Fatalf("NewRunner().Cache = %v, want cache.Null", r.Cache)
			}
			r.Cache = tt.store
			res, err := r.Execute(context.Background(), Options{
				Records: records(),
				Formats: []string{FormatSVG, FormatDOT},
			})
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			for _, f := range []string{FormatSVG, FormatDOT} {
				if len(res.Artifacts[f]) == 0 {
					t.Errorf("%s artifact is empty", f)
				}
			}
		})
	}
}

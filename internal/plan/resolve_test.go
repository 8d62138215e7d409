package plan

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jaa/cast2gif/internal/fileops"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func writeCast(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "demo.cast")
	payload := `{"version": 2, "width": 10, "height": 2}` + "\n" + `[0.1, "o", "hi"]` + "\n"
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write cast: %v", err)
	}
	return path
}

func resolveForTest(t *testing.T, req Request) (*Plan, string, error) {
	t.Helper()
	if req.Env == nil {
		req.Env = map[string]string{}
	}
	logs := &bytes.Buffer{}
	p, err := Resolve(req, newTestLogger(logs))
	if p != nil {
		t.Cleanup(func() { _ = p.Close() })
	}
	return p, logs.String(), err
}

func TestResolveFormatPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		out      string
		flag     string
		want     Format
		wantWarn bool
	}{
		{name: "png extension", out: "out.png", want: FormatPNG},
		{name: "uppercase extension", out: "OUT.SVG", want: FormatSVG},
		{name: "explicit flag wins", out: "out.cast", flag: "svg", want: FormatSVG},
		{name: "explicit flag any case", out: "out.gif", flag: " PNG ", want: FormatPNG},
		{name: "unknown extension", out: "out.unknown", want: FormatGIF, wantWarn: true},
		{name: "no extension", out: "out", want: FormatGIF, wantWarn: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tmp := t.TempDir()
			p, logs, err := resolveForTest(t, Request{
				CastPath: writeCast(t, tmp),
				OutPath:  filepath.Join(tmp, tc.out),
				Format:   tc.flag,
			})
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if p.Format != tc.want {
				t.Fatalf("format = %q, want %q", p.Format, tc.want)
			}
			warned := strings.Contains(logs, "assuming gif format")
			if warned != tc.wantWarn {
				t.Fatalf("warned = %v, want %v (logs: %s)", warned, tc.wantWarn, logs)
			}
		})
	}
}

func TestResolveRejectsUnknownExplicitFormat(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(tmp, "out.gif")
	_, _, err := resolveForTest(t, Request{CastPath: writeCast(t, tmp), OutPath: out, Format: "webp"})
	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("expected ArgumentError, got %v", err)
	}
	if _, statErr := os.Stat(out); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("output must not be created on argument error, stat err: %v", statErr)
	}
}

func TestResolveFrameInterval(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{raw: "0.1", want: 0.1},
		{raw: "", want: 0.1},
		{raw: " 2 ", want: 2},
		{raw: "abc", wantErr: true},
		{raw: "0", wantErr: true},
		{raw: "-0.5", wantErr: true},
		{raw: "NaN", wantErr: true},
		{raw: "Inf", wantErr: true},
		{raw: "0.01", want: 0.01},
		{raw: "0.009", wantErr: true},
		{raw: "1e-300", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			tmp := t.TempDir()
			out := filepath.Join(tmp, "out.gif")
			p, _, err := resolveForTest(t, Request{CastPath: writeCast(t, tmp), OutPath: out, FrameInterval: tc.raw})
			if tc.wantErr {
				var argErr *ArgumentError
				if !errors.As(err, &argErr) {
					t.Fatalf("expected ArgumentError, got %v", err)
				}
				if _, statErr := os.Stat(out); !errors.Is(statErr, os.ErrNotExist) {
					t.Fatalf("output must not be created, stat err: %v", statErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if p.FrameInterval != tc.want {
				t.Fatalf("interval = %v, want %v", p.FrameInterval, tc.want)
			}
		})
	}
}

func TestResolveMissingInputIsPathError(t *testing.T) {
	tmp := t.TempDir()
	_, _, err := resolveForTest(t, Request{CastPath: filepath.Join(tmp, "missing.cast"), OutPath: filepath.Join(tmp, "out.gif")})
	var pathErr *PathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("expected PathError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist cause, got %v", err)
	}
}

func TestResolveOverwriteGuard(t *testing.T) {
	tmp := t.TempDir()
	castPath := writeCast(t, tmp)
	out := filepath.Join(tmp, "out.gif")
	if err := os.WriteFile(out, []byte("precious"), 0o644); err != nil {
		t.Fatalf("write existing output: %v", err)
	}

	_, _, err := resolveForTest(t, Request{CastPath: castPath, OutPath: out})
	var pathErr *PathError
	if !errors.As(err, &pathErr) || !errors.Is(err, fileops.ErrOutputExists) {
		t.Fatalf("expected PathError wrapping ErrOutputExists, got %v", err)
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already exists message, got %q", err.Error())
	}
	payload, _ := os.ReadFile(out)
	if string(payload) != "precious" {
		t.Fatalf("expected output untouched, got %q", string(payload))
	}

	p, _, err := resolveForTest(t, Request{CastPath: castPath, OutPath: out, Force: true})
	if err != nil {
		t.Fatalf("resolve with force: %v", err)
	}
	if !p.Overwrite {
		t.Fatalf("expected overwrite recorded in plan")
	}
	payload, _ = os.ReadFile(out)
	if len(payload) != 0 {
		t.Fatalf("expected original content discarded, got %q", string(payload))
	}
}

func TestResolveCheckFormatLeavesOutputUntouched(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(tmp, "out.svg")
	if err := os.WriteFile(out, []byte("precious"), 0o644); err != nil {
		t.Fatalf("write existing output: %v", err)
	}
	unsupported := errors.New("svg unsupported")

	_, _, err := resolveForTest(t, Request{
		CastPath:    writeCast(t, tmp),
		OutPath:     out,
		Force:       true,
		CheckFormat: func(f Format) error {
			if f == FormatSVG {
				return unsupported
			}
			return nil
		},
	})
	if !errors.Is(err, unsupported) {
		t.Fatalf("expected CheckFormat error, got %v", err)
	}
	payload, _ := os.ReadFile(out)
	if string(payload) != "precious" {
		t.Fatalf("expected output untouched, got %q", string(payload))
	}
}

func TestResolveBadThemeIsArgumentError(t *testing.T) {
	tmp := t.TempDir()
	_, _, err := resolveForTest(t, Request{
		CastPath:  writeCast(t, tmp),
		OutPath:   filepath.Join(tmp, "out.gif"),
		ThemePath: filepath.Join(tmp, "missing.yaml"),
	})
	var argErr *ArgumentError
	if !errors.As(err, &argErr) || argErr.Flag != "--theme" {
		t.Fatalf("expected --theme ArgumentError, got %v", err)
	}
}

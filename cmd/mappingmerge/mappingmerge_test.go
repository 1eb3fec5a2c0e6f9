package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bazelbuild/bazel-gazelle/testtools"
	"github.com/google/go-cmp/cmp"

	"github.com/stackb/layered-mappings/pkg/layerio"
	"github.com/stackb/layered-mappings/pkg/mapping"
	"github.com/stackb/layered-mappings/pkg/namespace"
	"github.com/stackb/layered-mappings/pkg/testutil"
)

var layerFiles = []testtools.FileSpec{
	{
		Path: "layers.star",
		Content: `
layer(name = "intermediary", srcs = ["intermediary.yaml"])
layer(name = "yarn", srcs = ["yarn/*.yaml"])
`,
	},
	{
		Path: "intermediary.yaml",
		Content: `namespaces: [official, intermediary]
records:
  - {kind: class, class: a, names: {official: a, intermediary: net/minecraft/class_1}}
  - {kind: method, class: a, member: m, desc: (La;)V, names: {official: m, intermediary: method_1}}
`,
	},
	{
		Path: "yarn/client.yaml",
		Content: `records:
  - {kind: class, class: a, names: {named: net/minecraft/client/MinecraftClient}}
  - {kind: method, class: a, member: m, desc: (La;)V, names: {named: tick}}
`,
	},
	{
		Path: "fixes.json",
		Content: `{"records": [{"kind": "method", "class": "a", "member": "m", "desc": "(La;)V", "names": {"named": "update"}}]}
`,
	},
	{
		Path: "conflict.yaml",
		Content: `records:
  - {kind: class, class: b, names: {named: net/minecraft/client/MinecraftClient}}
`,
	},
}

func TestParseFlags(t *testing.T) {
	for name, tc := range map[string]struct {
		args    []string
		want    *config
		wantErr string
	}{
		"config": {
			args: []string{"-config", "layers.star", "-output_file", "out.yaml"},
			want: &config{configFile: "layers.star", outputFile: "out.yaml", outputName: "merged", logLevel: "info", layerFiles: []string{}},
		},
		"positional": {
			args: []string{"-output_file", "out.json", "-log_level", "debug", "-override_detail", "a.yaml", "b.yaml"},
			want: &config{outputFile: "out.json", outputName: "merged", logLevel: "debug", overrideDetail: true, layerFiles: []string{"a.yaml", "b.yaml"}},
		},
		"missing output": {
			args:    []string{"-config", "layers.star"},
			wantErr: "-output_file is required",
		},
		"missing layers": {
			args:    []string{"-output_file", "out.yaml"},
			wantErr: "either -config or positional layer files are required",
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := parseFlags(tc.args)
			if tc.wantErr != "" {
				if err == nil || err.Error() != tc.wantErr {
					t.Fatalf("want error %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got, cmp.AllowUnexported(config{})); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir, _, cleanup := testutil.MustPrepareTestFiles(t, layerFiles)
	defer cleanup()

	conf := &config{
		configFile:     filepath.Join(dir, "layers.star"),
		outputFile:     filepath.Join(dir, "merged.yaml"),
		outputName:     "merged",
		logLevel:       "info",
		overrideDetail: true,
		layerFiles:     []string{filepath.Join(dir, "fixes.json")},
	}
	var stderr bytes.Buffer
	if err := run(conf, &stderr); err != nil {
		t.Fatal(err, stderr.String())
	}

	merged, err := layerio.ReadLayerFile(conf.outputFile)
	if err != nil {
		t.Fatal(err)
	}
	if merged.Name() != "merged" {
		t.Errorf("name: got %q", merged.Name())
	}
	want := map[mapping.Identity]mapping.Names{
		mapping.ClassIdentity("a"): {
			namespace.Official:     "a",
			namespace.Intermediary: "net/minecraft/class_1",
			namespace.Named:        "net/minecraft/client/MinecraftClient",
		},
		mapping.MethodIdentity("a", "m", "(La;)V"): {
			namespace.Official:     "m",
			namespace.Intermediary: "method_1",
			namespace.Named:        "update",
		},
	}
	got := make(map[mapping.Identity]mapping.Names)
	for id, r := range merged.RecordsByIdentity() {
		got[id] = r.Names
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	logs := stderr.String()
	for _, want := range []string{
		`"message":"override"`,
		`"old":"tick"`,
		`"new":"update"`,
		`"summary":"3 layers, 1 overrides, named=1"`,
		`"message":"wrote merged mappings"`,
	} {
		if !strings.Contains(logs, want) {
			t.Errorf("log missing %s:\n%s", want, logs)
		}
	}
}

func TestRunJSONOutput(t *testing.T) {
	dir, _, cleanup := testutil.MustPrepareTestFiles(t, layerFiles)
	defer cleanup()

	conf := &config{
		outputFile: filepath.Join(dir, "merged.json"),
		outputName: "fixes-only",
		logLevel:   "error",
		layerFiles: []string{filepath.Join(dir, "intermediary.yaml"), filepath.Join(dir, "fixes.json")},
	}
	var stderr bytes.Buffer
	if err := run(conf, &stderr); err != nil {
		t.Fatal(err)
	}
	if stderr.Len() != 0 {
		t.Errorf("expected no log output at error level, got %s", stderr.String())
	}

	got := testutil.MustReadTestFile(t, dir, "merged.json")
	for _, want := range []string{
		`"name": "fixes-only"`,
		`"namespaces": [`,
		`"named": "update"`,
		`"intermediary": "method_1"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %s:\n%s", want, got)
		}
	}
}

func TestRunAmbiguous(t *testing.T) {
	dir, _, cleanup := testutil.MustPrepareTestFiles(t, layerFiles)
	defer cleanup()

	conf := &config{
		configFile: filepath.Join(dir, "layers.star"),
		outputFile: filepath.Join(dir, "merged.yaml"),
		logLevel:   "warn",
		layerFiles: []string{filepath.Join(dir, "conflict.yaml")},
	}
	var stderr bytes.Buffer
	err := run(conf, &stderr)
	if err == nil {
		t.Fatal("expected ambiguity error")
	}
	want := `ambiguous class name "net/minecraft/client/MinecraftClient" in namespace named`
	if !strings.Contains(err.Error(), want) {
		t.Errorf("want error containing %q, got %q", want, err.Error())
	}
}

func TestRunBadLayer(t *testing.T) {
	dir, _, cleanup := testutil.MustPrepareTestFiles(t, layerFiles)
	defer cleanup()

	conf := &config{
		outputFile: filepath.Join(dir, "merged.yaml"),
		logLevel:   "info",
		layerFiles: []string{filepath.Join(dir, "layers.star")},
	}
	err := run(conf, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "unknown layer file extension") {
		t.Fatalf("unexpected error: %v", err)
	}
}

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bazelbuild/bazel-gazelle/testtools"
	"github.com/google/go-cmp/cmp"

	"github.com/stackb/layered-mappings/pkg/namespace"
	"github.com/stackb/layered-mappings/pkg/testutil"
)

const mergedYAML = `name: merged
records:
  - kind: class
    class: a
    names: {official: a, intermediary: net/minecraft/class_1, named: net/minecraft/client/MinecraftClient}
  - kind: class
    class: b
    names: {official: b, intermediary: net/minecraft/class_2, named: net/minecraft/world/World}
  - kind: method
    class: a
    member: m
    desc: (Lb;)V
    names: {official: m, intermediary: method_1, named: tick}
  - kind: parameter
    class: a
    member: m
    desc: (Lb;)V
    index: 0
    names: {named: world}
  - kind: field
    class: a
    member: f
    names: {official: f, intermediary: field_1, named: world}
`

func TestParseFlags(t *testing.T) {
	for name, tc := range map[string]struct {
		args    []string
		want    *config
		wantErr string
	}{
		"ok": {
			args: []string{"-mappings", "m.yaml", "-from", "Intermediary", "-to", "named"},
			want: &config{mappingsFile: "m.yaml", from: namespace.Intermediary, to: namespace.Named, logLevel: "warn"},
		},
		"missing mappings": {
			args:    []string{"-from", "official", "-to", "named"},
			wantErr: "-mappings is required",
		},
		"unknown namespace": {
			args:    []string{"-mappings", "m.yaml", "-from", "hashed", "-to", "named"},
			wantErr: `-from: unknown namespace "hashed"`,
		},
		"missing to": {
			args:    []string{"-mappings", "m.yaml", "-from", "official"},
			wantErr: `-to: unknown namespace ""`,
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
	for name, tc := range map[string]struct {
		from, to  namespace.Namespace
		keepGoing bool
		in        string
		want      string
		wantErr   string
	}{
		"intermediary to named": {
			from: namespace.Intermediary,
			to:   namespace.Named,
			in: `# references
class net/minecraft/class_1
class net/minecraft/class_1$1
class java/lang/Object

desc (Lnet/minecraft/class_2;I)[Lnet/minecraft/class_1;
method net/minecraft/class_1 method_1 (Lnet/minecraft/class_2;)V
field net/minecraft/class_1 field_1
field net/minecraft/class_1 field_1 Lnet/minecraft/class_2;
param net/minecraft/class_1 method_1 (Lnet/minecraft/class_2;)V 0 arg0
`,
			want: `# references
class net/minecraft/client/MinecraftClient
class net/minecraft/client/MinecraftClient$1
class java/lang/Object

desc (Lnet/minecraft/world/World;I)[Lnet/minecraft/client/MinecraftClient;
method net/minecraft/client/MinecraftClient tick (Lnet/minecraft/world/World;)V
field net/minecraft/client/MinecraftClient world
field net/minecraft/client/MinecraftClient world Lnet/minecraft/world/World;
param net/minecraft/client/MinecraftClient tick (Lnet/minecraft/world/World;)V 0 world
`,
		},
		"named to official": {
			from: namespace.Named,
			to:   namespace.Official,
			in:   "method net/minecraft/client/MinecraftClient tick (Lnet/minecraft/world/World;)V\n",
			want: "method a m (Lb;)V\n",
		},
		"malformed descriptor": {
			from:    namespace.Intermediary,
			to:      namespace.Named,
			in:      "class net/minecraft/class_1\ndesc (V)V\n",
			wantErr: `line 2: malformed descriptor "(V)V" at offset 1: void is only valid as a return type`,
		},
		"keep going": {
			from:      namespace.Intermediary,
			to:        namespace.Named,
			keepGoing: true,
			in:        "desc (V)V\nfoo bar\nclass net/minecraft/class_2\n",
			want:      "desc (V)V\nfoo bar\nclass net/minecraft/world/World\n",
		},
		"usage": {
			from:    namespace.Intermediary,
			to:      namespace.Named,
			in:      "method net/minecraft/class_1 method_1\n",
			wantErr: "line 1: usage: method OWNER NAME DESCRIPTOR",
		},
		"bad index": {
			from:    namespace.Intermediary,
			to:      namespace.Named,
			in:      "param net/minecraft/class_1 method_1 (Lnet/minecraft/class_2;)V -1 x\n",
			wantErr: `line 1: invalid parameter index "-1"`,
		},
	} {
		t.Run(name, func(t *testing.T) {
			dir, _, cleanup := testutil.MustPrepareTestFiles(t, []testtools.FileSpec{
				{Path: "merged.yaml", Content: mergedYAML},
			})
			defer cleanup()

			conf := &config{
				mappingsFile: filepath.Join(dir, "merged.yaml"),
				from:         tc.from,
				to:           tc.to,
				keepGoing:    tc.keepGoing,
				logLevel:     "warn",
			}
			var stdout, stderr bytes.Buffer
			err := run(conf, strings.NewReader(tc.in), &stdout, &stderr)
			if tc.wantErr != "" {
				if err == nil || err.Error() != tc.wantErr {
					t.Fatalf("want error %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, stdout.String()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if tc.keepGoing && !strings.Contains(stderr.String(), `"message":"skipping"`) {
				t.Errorf("expected skip warnings, got %s", stderr.String())
			}
		})
	}
}

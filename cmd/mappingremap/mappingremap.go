// mappingremap remaps symbol references read from stdin.
//
//	mappingremap -mappings merged.yaml -from intermediary -to named < refs.txt
//
// Each input line is one reference:
//
//	class NAME
//	desc DESCRIPTOR
//	method OWNER NAME DESCRIPTOR
//	field OWNER NAME [DESCRIPTOR]
//	param OWNER METHOD DESCRIPTOR INDEX NAME
//
// and is written to stdout in the same form, remapped. Blank lines and
// lines starting with '#' are copied unchanged.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/stackb/layered-mappings/pkg/layerio"
	"github.com/stackb/layered-mappings/pkg/logger"
	"github.com/stackb/layered-mappings/pkg/mapping"
	"github.com/stackb/layered-mappings/pkg/merge"
	"github.com/stackb/layered-mappings/pkg/namespace"
	"github.com/stackb/layered-mappings/pkg/procutil"
	"github.com/stackb/layered-mappings/pkg/remap"
)

type config struct {
	mappingsFile string
	from, to     namespace.Namespace
	keepGoing    bool
	logLevel     string
}

func main() {
	log.SetPrefix("mappingremap: ")
	log.SetFlags(0) // don't print timestamps

	conf, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if err := run(conf, os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func parseFlags(args []string) (*config, error) {
	conf := &config{}
	var from, to string
	fs := flag.NewFlagSet("mappingremap", flag.ContinueOnError)
	fs.StringVar(&conf.mappingsFile, "mappings", "", "the layer file to remap with, typically the output of mappingmerge")
	fs.StringVar(&from, "from", "", "the namespace of the input references")
	fs.StringVar(&to, "to", "", "the namespace to remap into")
	fs.BoolVar(&conf.keepGoing, "keep_going", false, "log malformed lines and continue instead of failing")
	fs.StringVar(&conf.logLevel, "log_level", procutil.LookupStringEnv(procutil.LogLevelEnv, "warn"), "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if conf.mappingsFile == "" {
		return nil, errors.New("-mappings is required")
	}
	for _, f := range []struct {
		flag  string
		value string
		ns    *namespace.Namespace
	}{
		{"from", from, &conf.from},
		{"to", to, &conf.to},
	} {
		if err := f.ns.UnmarshalText([]byte(f.value)); err != nil {
			return nil, fmt.Errorf("-%s: %w", f.flag, err)
		}
	}
	return conf, nil
}

func run(conf *config, stdin io.Reader, stdout, stderr io.Writer) error {
	zlog, err := logger.New(stderr, conf.logLevel)
	if err != nil {
		return err
	}

	layer, err := layerio.ReadLayerFile(conf.mappingsFile, layerio.WithWarn(logger.Warnf(zlog)))
	if err != nil {
		return err
	}
	tree, _, err := merge.New(merge.WithLogger(zlog)).Merge(layer)
	if err != nil {
		return err
	}
	if !tree.Namespaces().Has(conf.from) {
		zlog.Warn().Stringer("namespace", conf.from).Msg("no symbol is named in the source namespace")
	}

	r := remap.New(tree, conf.from, conf.to)
	out := bufio.NewWriter(stdout)
	in := bufio.NewScanner(stdin)
	in.Buffer(make([]byte, 64*1024), 1024*1024)

	lineno := 0
	for in.Scan() {
		lineno++
		line := in.Text()
		remapped, err := remapLine(r, line)
		if err != nil {
			if !conf.keepGoing {
				return fmt.Errorf("line %d: %w", lineno, err)
			}
			zlog.Warn().Int("line", lineno).Err(err).Msg("skipping")
			remapped = line
		}
		if _, err := fmt.Fprintln(out, remapped); err != nil {
			return err
		}
	}
	if err := in.Err(); err != nil {
		return fmt.Errorf("read: %w", err)
	}
	return out.Flush()
}

func remapLine(r *remap.Remapper, line string) (string, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return line, nil
	}

	fields := strings.Fields(trimmed)
	switch op, args := fields[0], fields[1:]; op {
	case "class":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: class NAME")
		}
		return join(op, r.ClassName(args[0])), nil

	case "desc":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: desc DESCRIPTOR")
		}
		desc, err := r.Descriptor(args[0])
		if err != nil {
			return "", err
		}
		return join(op, desc), nil

	case "method", "field":
		kind := mapping.KindMethod
		if op == "field" {
			kind = mapping.KindField
		}
		var desc string
		switch {
		case len(args) == 3:
			desc = args[2]
		case len(args) == 2 && kind == mapping.KindField:
		default:
			return "", fmt.Errorf("usage: %s OWNER NAME DESCRIPTOR", op)
		}
		ref, err := r.Member(args[0], args[1], desc, kind)
		if err != nil {
			return "", err
		}
		if desc == "" {
			return join(op, ref.Owner, ref.Name), nil
		}
		return join(op, ref.Owner, ref.Name, ref.Desc), nil

	case "param":
		if len(args) != 5 {
			return "", fmt.Errorf("usage: param OWNER METHOD DESCRIPTOR INDEX NAME")
		}
		index, err := strconv.Atoi(args[3])
		if err != nil || index < 0 {
			return "", fmt.Errorf("invalid parameter index %q", args[3])
		}
		ref, err := r.Member(args[0], args[1], args[2], mapping.KindMethod)
		if err != nil {
			return "", err
		}
		name, err := r.ParameterName(args[0], args[1], args[2], index, args[4])
		if err != nil {
			return "", err
		}
		return join(op, ref.Owner, ref.Name, ref.Desc, args[3], name), nil
	}
	return "", fmt.Errorf("unknown reference kind %q", fields[0])
}

func join(fields ...string) string {
	return strings.Join(fields, " ")
}

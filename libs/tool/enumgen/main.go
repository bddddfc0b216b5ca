// Command enumgen generates String() methods for the wire enums.
//
// It scans a package for byte-sized named types and their constants, then
// writes one switch per type into enum_string_gen.go. Constants named
// <Type>Unknown are left to the default arm, so an unrecognized byte and the
// explicit sentinel print the same.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"go/format"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

const outputName = "enum_string_gen.go"

type enumType struct {
	Name   string
	Order  token.Pos
	Consts []enumConst
}

type enumConst struct {
	Name  string
	Label string
	Order token.Pos
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "enumgen: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dirFlag := flag.String("dir", ".", "package directory to scan")
	flag.Parse()

	dir, err := filepath.Abs(*dirFlag)
	if err != nil {
		return err
	}

	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedSyntax |
			packages.NeedTypes |
			packages.NeedTypesInfo |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles,
		Dir: dir,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return err
	}
	if len(pkgs) == 0 {
		return errors.New("no packages found")
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return fmt.Errorf("type check failed: %s", pkg.Errors[0])
	}

	enums, err := collectEnums(pkg)
	if err != nil {
		return err
	}
	if len(enums) == 0 {
		return fmt.Errorf("no byte-sized enum types found in %s", dir)
	}

	out, err := render(pkg.Name, enums)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, outputName), out, 0o644)
}

func collectEnums(pkg *packages.Package) ([]enumType, error) {
	scope := pkg.Types.Scope()
	byName := make(map[string]*enumType)

	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !isByteEnum(obj.Type()) {
			continue
		}
		byName[name] = &enumType{Name: name, Order: obj.Pos()}
	}

	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok {
			continue
		}
		named, ok := c.Type().(*types.Named)
		if !ok {
			continue
		}
		enum, ok := byName[named.Obj().Name()]
		if !ok {
			continue
		}
		if name == enum.Name+"Unknown" {
			continue
		}
		label := strings.TrimPrefix(name, enum.Name)
		if label == name {
			return nil, fmt.Errorf("constant %s does not carry the %s prefix", name, enum.Name)
		}
		enum.Consts = append(enum.Consts, enumConst{Name: name, Label: label, Order: c.Pos()})
	}

	var enums []enumType
	for _, enum := range byName {
		if len(enum.Consts) == 0 {
			continue
		}
		sort.Slice(enum.Consts, func(i, j int) bool {
			return enum.Consts[i].Order < enum.Consts[j].Order
		})
		enums = append(enums, *enum)
	}
	sort.Slice(enums, func(i, j int) bool { return enums[i].Order < enums[j].Order })

	return enums, nil
}

func isByteEnum(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	basic, ok := named.Underlying().(*types.Basic)
	if !ok {
		return false
	}
	return basic.Kind() == types.Uint8
}

func render(pkgName string, enums []enumType) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("// Code generated by enumgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkgName)

	for i, enum := range enums {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "func (v %s) String() string {\n", enum.Name)
		fmt.Fprintf(&buf, "\tswitch v {\n")
		for _, c := range enum.Consts {
			fmt.Fprintf(&buf, "\tcase %s:\n", c.Name)
			fmt.Fprintf(&buf, "\t\treturn %q\n", c.Label)
		}
		fmt.Fprintf(&buf, "\tdefault:\n")
		fmt.Fprintf(&buf, "\t\treturn \"Unknown\"\n")
		fmt.Fprintf(&buf, "\t}\n")
		fmt.Fprintf(&buf, "}\n")
	}

	return format.Source(buf.Bytes())
}

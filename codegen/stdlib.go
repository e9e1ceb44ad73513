package codegen

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"chogo/runtime"
)

// stringLiteralPattern matches STRING["..."] placeholders in runtime library
// source.
var stringLiteralPattern = regexp.MustCompile(`STRING\["(.*?)"\]`)

// convertLiterals replaces STRING["..."] notations in source with the labels
// of string constants, interning the strings in the pool as needed.  Each
// replacement is padded with spaces to the width of the placeholder it
// replaces, keeping the hand-written column alignment of the library source
// intact.
func (cg *CodeGen) convertLiterals(source string) string {
	return stringLiteralPattern.ReplaceAllStringFunc(source, func(match string) string {
		value := stringLiteralPattern.FindStringSubmatch(match)[1]
		label := cg.constants.GetStrConstant(value)
		return pad(label.String(), ' ', len(match))
	})
}

// standardLibraryCode returns the assembly source for the routine name,
// either from the configured on-disk library directory or from the embedded
// fragment store.
func (cg *CodeGen) standardLibraryCode(name string) (string, error) {
	simpleName := strings.ReplaceAll(name, "$", "")
	if cg.libDir != "" {
		data, err := os.ReadFile(filepath.Join(cg.libDir, simpleName+".s"))
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return runtime.Source(simpleName)
}

// EmitStdFunc emits the label and body of the runtime library routine
// tagged by label.  A missing fragment is fatal.
func (cg *CodeGen) EmitStdFunc(label Label) {
	cg.emitStdFuncNamed(label, label.Name)
}

// EmitStdFuncNamed emits the label and body of the runtime library routine
// named name.
func (cg *CodeGen) EmitStdFuncNamed(name string) {
	cg.emitStdFuncNamed(NewLabel(name), name)
}

func (cg *CodeGen) emitStdFuncNamed(label Label, sourceName string) {
	source, err := cg.standardLibraryCode(sourceName)
	if err != nil {
		ice("Code for %s is missing.", sourceName)
	}
	cg.backend.EmitGlobalLabel(label)
	cg.backend.Emit(cg.convertLiterals(source))
}

// pad returns s right-padded with fill to toLen characters; s is returned
// unchanged if it is already at least toLen characters.
func pad(s string, fill rune, toLen int) string {
	if len(s) >= toLen {
		return s
	}
	return s + strings.Repeat(string(fill), toLen-len(s))
}

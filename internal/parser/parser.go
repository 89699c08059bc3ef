// Package parser implements the Input Parser component: bytes in, a
// partial *Input out, with per-field diagnostics rather than all-or-
// nothing failure. It is grounded on github.com/BurntSushi/toml, the
// TOML library the example corpus reaches for (Creative-Workz-Studio-LLC,
// DataDog-datadog-agent) rather than a hand-rolled decoder.
package parser

import (
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/ra-configtree/ratree/internal/rerrors"
	"github.com/ra-configtree/ratree/internal/schema"
	"github.com/ra-configtree/ratree/internal/vfs"
)

// Parse reads file id's bytes from store and returns a partial Input,
// recording diagnostics into sink without aborting on the first failure.
//
//   - Empty content: returns (nil, nil) — no input, no error.
//   - Non-UTF-8 content: returns (nil, nil) after recording a Utf8 error.
//   - Syntactically invalid TOML: returns (nil, nil) after recording a TomlParse error.
//   - Valid TOML with bad fields: returns (partial Input, nil), one TomlDeserialize per bad field.
func Parse(id vfs.FileID, store vfs.Store, sink rerrors.Sink) (*Input, error) {
	raw, err := store.FileContents(id)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	path, _ := store.FilePath(id)

	if !utf8.Valid(raw) {
		sink.Add(rerrors.Utf8Err(path, errInvalidUTF8))
		return nil, nil
	}

	var table map[string]interface{}
	if _, err := toml.Decode(string(raw), &table); err != nil {
		sink.Add(rerrors.TomlParseErr(path, err))
		return nil, nil
	}

	sparse := schema.Sparse{}
	failed := false
	if b, ok, err := getBool(table, "completion", "autoself", "enable"); err != nil {
		sink.Add(rerrors.TomlDeserializeErr(path, "completion.autoself.enable", err))
		failed = true
	} else if ok {
		sparse.CompletionAutoselfEnable = &b
	}

	if b, ok, err := getBool(table, "completion", "autoimport", "enable"); err != nil {
		sink.Add(rerrors.TomlDeserializeErr(path, "completion.autoimport.enable", err))
		failed = true
	} else if ok {
		sparse.CompletionAutoimportEnable = &b
	}

	if b, ok, err := getBool(table, "semanticHighlighting", "strings", "enable"); err != nil {
		sink.Add(rerrors.TomlDeserializeErr(path, "semanticHighlighting.strings.enable", err))
		failed = true
	} else if ok {
		sparse.SemanticHighlightingStringsEnable = &b
	}

	if s, ok, err := getEnum(table, []string{"never", "fieldless", "always"}, "inlayHints", "discriminantHints", "enable"); err != nil {
		sink.Add(rerrors.TomlDeserializeErr(path, "inlayHints.discriminantHints.enable", err))
		failed = true
	} else if ok {
		v := schema.DiscriminantHints(s)
		sparse.InlayHintsDiscriminantHints = &v
	}

	if s, ok, err := getString(table, "checkOnSave", "command"); err != nil {
		sink.Add(rerrors.TomlDeserializeErr(path, "checkOnSave.command", err))
		failed = true
	} else if ok {
		sparse.CheckOnSaveCommand = &s
	}

	if ss, ok, err := getStringSlice(table, "cargo", "features"); err != nil {
		sink.Add(rerrors.TomlDeserializeErr(path, "cargo.features", err))
		failed = true
	} else if ok {
		sparse.CargoFeatures = &ss
	}

	if ss, ok, err := getStringSlice(table, "diagnostics", "disabled"); err != nil {
		sink.Add(rerrors.TomlDeserializeErr(path, "diagnostics.disabled", err))
		failed = true
	} else if ok {
		sparse.DiagnosticsDisabled = &ss
	}

	if s, ok, err := getEnum(table, []string{"workspace", "workspaceAndDependencies"}, "workspace", "symbol", "search", "scope"); err != nil {
		sink.Add(rerrors.TomlDeserializeErr(path, "workspace.symbol.search.scope", err))
		failed = true
	} else if ok {
		v := schema.SymbolSearchScope(s)
		sparse.SymbolSearchScope = &v
	}

	if sparse.IsEmpty() && !failed {
		return nil, nil
	}
	return &Input{Local: sparse}, nil
}

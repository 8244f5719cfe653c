// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the translation files against the source code. It
// fails when a message ID used in code is missing from any locale, and
// warns about orphaned IDs and hardcoded strings that may need translating.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Location stores the file and line number of a found string.
type Location struct {
	Filepath string
	Line     int
}

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "active.en.yaml"
	projectRoot   = "."
)

var (
	// i18n.T("id") and i18n.Tf("id"), plus dotted literals such as
	// confirmation IDs handed to a helper. A trailing dot marks a prefix
	// completed at runtime, e.g. "tui.tab." + name.
	usedKeyRe = regexp.MustCompile(`i18n\.Tf?\("([^"]+)"|"([a-z]+\.[a-z0-9_.]+)"`)
	keyRe     = regexp.MustCompile(`^[a-z_]+\.[a-z0-9\._]+$`)
	callRe    = regexp.MustCompile(`([a-zA-Z0-9_]+\.)?([a-zA-Z0-9_]+)\("([^"]+)"`)
	allCapsRe = regexp.MustCompile(`^[A-Z_]+$`)
	formatRe  = regexp.MustCompile(`^[\s%.,:;()#\d\w-]*%[\s\w-]*$`)
)

// Report is the outcome of one lint run.
type Report struct {
	Used         int
	Primary      int
	Undefined    map[string][]string // locale file -> IDs used in code but missing there
	Orphaned     []string
	Untranslated map[string][]Location
}

// Failed reports whether the run found errors (warnings do not count).
func (r Report) Failed() bool {
	for _, ids := range r.Undefined {
		if len(ids) > 0 {
			return true
		}
	}
	return false
}

func main() {
	fmt.Println("🔍 Running i18n linter...")
	r, err := lint(projectRoot, filepath.Join(projectRoot, localesDir))
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	printReport(os.Stdout, r)
	if r.Failed() {
		os.Exit(1)
	}
}

// lint checks every locale file under locales against the Go sources below root.
func lint(root, locales string) (Report, error) {
	r := Report{Undefined: map[string][]string{}}

	used, err := findUsedKeys(root)
	if err != nil {
		return r, fmt.Errorf("finding used keys: %w", err)
	}
	r.Used = len(used)

	primary, err := loadKeysFromLocale(filepath.Join(locales, primaryLocale))
	if err != nil {
		return r, fmt.Errorf("loading primary locale %s: %w", primaryLocale, err)
	}
	r.Primary = len(primary)

	// Only IDs in a namespace the locales define are message IDs; this keeps
	// literals like "keydesk.yaml" out.
	namespaces := map[string]struct{}{}
	for k := range primary {
		namespaces[strings.SplitN(k, ".", 2)[0]] = struct{}{}
	}
	var ids []string
	for k := range used {
		if _, ok := namespaces[strings.SplitN(k, ".", 2)[0]]; ok {
			ids = append(ids, k)
		}
	}
	sort.Strings(ids)

	files, err := filepath.Glob(filepath.Join(locales, "*.yaml"))
	if err != nil {
		return r, fmt.Errorf("finding locale files: %w", err)
	}
	sort.Strings(files)
	for _, file := range files {
		keys, err := loadKeysFromLocale(file)
		if err != nil {
			return r, fmt.Errorf("loading %s: %w", file, err)
		}
		var missing []string
		for _, id := range ids {
			if !defined(id, keys) {
				missing = append(missing, id)
			}
		}
		// Everything the primary locale has, the others need too.
		if filepath.Base(file) != primaryLocale {
			for k := range primary {
				if _, ok := keys[k]; !ok && !contains(missing, k) {
					missing = append(missing, k)
				}
			}
			sort.Strings(missing)
		}
		r.Undefined[filepath.Base(file)] = missing
	}

	for k := range primary {
		if !usedBy(k, used) {
			r.Orphaned = append(r.Orphaned, k)
		}
	}
	sort.Strings(r.Orphaned)

	r.Untranslated, err = findUntranslatedStrings(root, used, primary)
	if err != nil {
		return r, fmt.Errorf("finding untranslated strings: %w", err)
	}
	return r, nil
}

// defined reports whether id (or, for a prefix, some ID under it) exists.
func defined(id string, keys map[string]struct{}) bool {
	if strings.HasSuffix(id, ".") {
		for k := range keys {
			if strings.HasPrefix(k, id) {
				return true
			}
		}
		return false
	}
	_, ok := keys[id]
	return ok
}

// usedBy reports whether key is referenced directly or through a prefix.
func usedBy(key string, used map[string]struct{}) bool {
	if _, ok := used[key]; ok {
		return true
	}
	for u := range used {
		if strings.HasSuffix(u, ".") && strings.HasPrefix(key, u) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func printReport(w io.Writer, r Report) {
	fmt.Fprintf(w, "✅ Found %d unique translation keys used in source code.\n", r.Used)
	fmt.Fprintf(w, "✅ Loaded %d keys from primary locale (%s).\n\n", r.Primary, primaryLocale)

	fmt.Fprintln(w, "--- Checking for Missing Keys ---")
	var files []string
	for f := range r.Undefined {
		files = append(files, f)
	}
	sort.Strings(files)
	for _, f := range files {
		fmt.Fprintf(w, "Checking %s:\n", f)
		if len(r.Undefined[f]) == 0 {
			fmt.Fprintln(w, "  ✨ All keys present.")
			continue
		}
		for _, k := range r.Undefined[f] {
			fmt.Fprintf(w, "  - Missing: %s\n", k)
		}
	}

	fmt.Fprintln(w, "\n--- Checking for Orphaned Keys (in primary locale but not used in code) ---")
	if len(r.Orphaned) == 0 {
		fmt.Fprintln(w, "  ✨ None found.")
	}
	for _, k := range r.Orphaned {
		fmt.Fprintf(w, "  - Orphaned: %s\n", k)
	}

	fmt.Fprintln(w, "\n--- Checking for Potentially Untranslated Strings ---")
	if len(r.Untranslated) == 0 {
		fmt.Fprintln(w, "  ✨ None found.")
	}
	var literals []string
	for l := range r.Untranslated {
		literals = append(literals, l)
	}
	sort.Strings(literals)
	for _, l := range literals {
		loc := r.Untranslated[l][0]
		fmt.Fprintf(w, "  - Potential: %q (found in %s:%d)\n", l, loc.Filepath, loc.Line)
	}

	fmt.Fprintln(w, "\n--- Linter Finished ---")
	switch {
	case r.Failed():
		fmt.Fprintln(w, "❌ Found issues that need to be addressed.")
	case len(r.Orphaned) > 0:
		fmt.Fprintln(w, "⚠️  Found orphaned keys. Please consider removing them.")
	default:
		fmt.Fprintln(w, "✅ All translation files are consistent!")
	}
}

// skipDir reports whether a directory holds no first-party sources.
func skipDir(info os.FileInfo, root, path string) bool {
	if !info.IsDir() || path == root {
		return false
	}
	name := info.Name()
	return name == "tools" || name == "testdata" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

// walkSources calls fn with the content of every non-test Go file under root.
func walkSources(root string, fn func(path, content string)) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if skipDir(info, root, path) {
			return filepath.SkipDir
		}
		if info.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		fn(path, string(content))
		return nil
	})
}

// findUsedKeys scans all .go files for message IDs.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := walkSources(root, func(_, content string) {
		for _, match := range usedKeyRe.FindAllStringSubmatch(content, -1) {
			// match[1] is from i18n.T(), match[2] is from the general string literal
			if match[1] != "" {
				keys[match[1]] = struct{}{}
			} else if match[2] != "" {
				keys[match[2]] = struct{}{}
			}
		}
	})
	return keys, err
}

// findUntranslatedStrings scans for hardcoded strings that might need translation.
func findUntranslatedStrings(root string, usedKeys, allKeys map[string]struct{}) (map[string][]Location, error) {
	untranslated := make(map[string][]Location)
	// Calls whose literals are developer-facing.
	blacklist := map[string]struct{}{
		"Print": {}, "Println": {}, "Printf": {}, "Fatal": {}, "Fatalf": {}, "WriteString": {},
		"Errorf": {}, "Warnf": {}, "Infof": {}, "Debugf": {}, "Lookup": {}, "Flags": {},
		"String": {}, "StringVar": {}, "StringVarP": {}, "Bool": {}, "BoolVar": {}, "BoolVarP": {},
		"IntVarP": {}, "Duration": {}, "DurationVar": {}, "Set": {}, "Setenv": {},
	}
	sqlKeywords := []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "TRUNCATE ", "PRAGMA ", "CREATE ", "ALTER ", "DROP "}

	err := walkSources(root, func(path, content string) {
		for i, line := range strings.Split(content, "\n") {
			for _, match := range callRe.FindAllStringSubmatch(line, -1) {
				funcName, literal := match[2], match[3]

				if _, skip := blacklist[funcName]; skip {
					continue
				}
				if _, exists := allKeys[literal]; exists {
					continue
				}
				if _, exists := usedKeys[literal]; exists || keyRe.MatchString(literal) {
					continue
				}
				if len(literal) < 4 {
					continue
				}
				if strings.HasPrefix(literal, "file:") || strings.HasPrefix(literal, "http") || strings.HasPrefix(literal, "2006-") {
					continue
				}
				upper := strings.ToUpper(literal)
				isSQL := false
				for _, keyword := range sqlKeywords {
					if strings.HasPrefix(upper, keyword) {
						isSQL = true
						break
					}
				}
				if isSQL || allCapsRe.MatchString(literal) {
					continue
				}
				if formatRe.MatchString(literal) && !strings.Contains(literal, " ") {
					continue
				}
				untranslated[literal] = append(untranslated[literal], Location{Filepath: path, Line: i + 1})
			}
		}
	})
	return untranslated, err
}

// loadKeysFromLocale reads a YAML file and returns a flat map of its keys.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}

	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML converts a nested map into a flat map with dot-separated keys.
// Flat dotted IDs pass through unchanged.
func flattenYAML(prefix string, node interface{}, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		for k, val := range v {
			newPrefix := k
			if prefix != "" {
				newPrefix = prefix + "." + k
			}
			flattenYAML(newPrefix, val, keys)
		}
	case []interface{}:
		for i, val := range v {
			flattenYAML(fmt.Sprintf("%s[%d]", prefix, i), val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}

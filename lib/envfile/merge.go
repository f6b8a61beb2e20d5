// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package envfile

// Merge reconciles a node's local env file at path against the shared
// store values, for the given declared keys. Per key:
//
//   - existing entry: overwritten with the store's value only when that
//     value is non-empty — a populated local value is never erased by
//     an empty one;
//   - missing entry: appended, with the store's value when present,
//     otherwise an empty placeholder.
//
// Lines not named by keys are preserved verbatim. The file is written
// only when the merge changed it, so repeated merges against an
// unchanged store leave the file untouched. Returns whether a write
// happened.
func Merge(path string, keys []string, store map[string]string) (bool, error) {
	file, err := Load(path)
	if err != nil {
		return false, err
	}

	before := string(file.Bytes())
	for _, key := range keys {
		storeValue := store[key]
		if _, exists := file.Lookup(key); exists {
			if storeValue != "" {
				file.Set(key, storeValue)
			}
			continue
		}
		file.Set(key, storeValue)
	}

	if string(file.Bytes()) == before {
		return false, nil
	}
	return true, file.Write(path)
}

// Package prefs holds user preferences: the Schema feature modules declare
// into, and the Store that merges persisted values with declared defaults,
// validates writes and persists the result.
//
// The persisted form is one JSON object under StorageKey:
//
//	{"whois": {"fang": true, "page_size": 50}, "general": {"ar_confirm": true}}
package prefs

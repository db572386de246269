// Package catalogs provides embedded pre-built catalog data.
package catalogs

import "embed"

// ReactNative is the bundled React Native & Expo reference catalog: a
// catalog.json manifest plus one JSON fragment per category group, embedded
// at build time.
//
//go:embed reactnative/*.json
var ReactNative embed.FS

// ReactNativeRoot is the directory inside ReactNative holding the catalog.
const ReactNativeRoot = "reactnative"

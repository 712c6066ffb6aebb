// Package watch reloads the live model when its artifact file changes on
// disk. Changes are debounced so a burst of writes triggers one reload.
package watch

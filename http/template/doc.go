/*
Package template parses HTML templates from an fs.FS and resolves them into views a response can render.

A [Parser] parses a set of template files with a shared function map.
A [Resolver] maps a view name, e.g., "orders/index", onto template files through a prefix and suffix,
optionally wrapping it in layout templates.
*/
package template

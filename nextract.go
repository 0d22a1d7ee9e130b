// Package nextract extracts Next.js hydration payloads from server-rendered
// HTML. Next.js streams serialized application state into the document as
// self.__next_f.push([...]) script calls; nextract locates those markers,
// reassembles multi-chunk streams, parses each payload (strict JSON with a
// permissive JavaScript-literal fallback), and exposes search helpers over
// the parsed values.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/).
package nextract

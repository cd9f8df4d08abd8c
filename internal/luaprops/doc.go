// Package luaprops reads the editable property declarations out of engine
// Lua scripts. It looks at two methods only: GatherProperties, which lists
// {name, type} records, and Create, whose self.<name> = <literal>
// assignments supply defaults. It is a scraper, not an interpreter: the last
// assignment to a field wins regardless of control flow.
package luaprops

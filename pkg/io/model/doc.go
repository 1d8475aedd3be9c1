// Package model loads the resolved project model a planner run starts from.
//
// A project model lists the build tool, the imported platform BOMs and the
// dependencies declared by the project and its modules. It is read from YAML,
// JSON or TOML, chosen by file extension.
package model

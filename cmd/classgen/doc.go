/*
classgen is a tool to automatically generate Go class declarations and
associated methods based on an XML Schema.

Usage:

	classgen [-c file] [-o file] [-pkg name] [-r rule] file.xsd

Given an XML file containing an <xsd:schema> declaration, classgen
will create a new Go source file containing a type declaration for
each class and enumeration defined in the schema, along with the
methods a document reader needs to build and walk object trees. The
generated source depends only on the xmlobj runtime package.

The default package name and output file are "schema" and
"classgen_output.go", and can be overridden by the -pkg and -o flags,
respectively.

The -r flag can be used to specify a series of replacement rules. A
replacement rule is a string of the form

	regex -> replacement

For example, the rule

	Array_Of_(.*) -> ${1}List

will transform the identifier Array_Of_Host to HostList. All
identifiers are passed through the defined substitution rules.

The -c flag names a YAML file holding the same settings, for builds
that would otherwise repeat a long flag list:

	package: deploy
	replace:
	  - "Array_Of_(.*) -> ${1}List"

The classgen command may be used with the go generate command. Simply
embed a comment in your go source like so:

	//go:generate classgen -pkg deploy schemafile.xsd
*/
package main

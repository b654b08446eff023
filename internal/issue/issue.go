// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	InvalidArgumentId Id = iota + 1
	FileNotFoundId
	PermissionDeniedId
	ReadFailedId
	CommandNotFoundId
	ScriptExecutionFailedId
	ConfigLoadFailedId
)

type (
	// Id identifies a catalog page.
	Id int

	// MarkdownMsg is the Markdown body of an issue page.
	MarkdownMsg string

	// HttpLink is a reference rendered under "See also".
	HttpLink string

	// Issue is one catalog page.
	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink  // reference documentation for the failing tool
		extLinks []HttpLink  // external links that might be useful for the user
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Markdown returns the page body followed by a "See also" list of links.
func (i *Issue) Markdown() string {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))

	links := append(i.DocLinks(), i.extLinks...)
	if len(links) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range links {
			md.WriteString("\n- <")
			md.WriteString(string(link))
			md.WriteString(">")
		}
	}
	return md.String()
}

// Render renders the page for a terminal using the given glamour style
// ("dark", "light", "notty", or a path to a JSON style).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	invalidArgumentIssue = &Issue{
		id: InvalidArgumentId,
		mdMsg: `
# Invalid argument!

The command line could not be turned into a valid run. Nothing was read.

## Common causes:
- A count that is zero, negative or not a number (` + "`head -n 0`" + `)
- Mutually exclusive flags given together (` + "`cat -n -b`, `head -n 1 -c 1`" + `)
- A ` + "`find --name`" + ` pattern that is not a valid regular expression
- A ` + "`find --type`" + ` value other than f, d or l

## Things you can try:
- Show the flags a tool accepts:
~~~
$ textkit head --help
~~~`,
		docLinks: []HttpLink{"https://pkg.go.dev/regexp/syntax"},
	}

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# File not found!

A path given on the command line does not exist.

Paths are resolved against the current directory. The single token ` + "`-`" + `
stands for standard input.

## Things you can try:
- Check the path for typos
- Pass an absolute path
- Read from standard input:
~~~
$ some-command | textkit wc -
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

textkit was not allowed to open or list a path.

## Things you can try:
- Check file and directory permissions:
~~~
$ ls -ld <path>
~~~

- Run textkit from a directory you own`,
	}

	readFailedIssue = &Issue{
		id: ReadFailedId,
		mdMsg: `
# Read failed!

An input was opened but reading it failed part way. Output written before the
failure has already been flushed.

## Common causes:
- The path is a directory
- The producer of a pipe exited abnormally
- The device or network mount went away`,
	}

	commandNotFoundIssue = &Issue{
		id: CommandNotFoundId,
		mdMsg: `
# Command not found!

The virtual shell could not resolve a command, neither as a textkit builtin
nor as a host binary on PATH.

## Things you can try:
- List the textkit builtins:
~~~
$ textkit --help
~~~

- Check that the host tool is installed and on PATH`,
	}

	scriptExecutionFailedIssue = &Issue{
		id: ScriptExecutionFailedId,
		mdMsg: `
# Script failed!

The shell script could not be parsed or exited with a non-zero status.

## Things you can try:
- Check the script syntax (POSIX shell)
- Run the failing line on its own to isolate it
- Run with verbose mode for debug diagnostics:
~~~
$ textkit --verbose sh -c '...'
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be parsed or did not match the schema.
Defaults are used instead.

## Things you can try:
- Show where textkit looks for its configuration:
~~~
$ textkit config path
~~~

- Recreate a default configuration:
~~~
$ textkit config init
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	issues = map[Id]*Issue{
		invalidArgumentIssue.Id():       invalidArgumentIssue,
		fileNotFoundIssue.Id():          fileNotFoundIssue,
		permissionDeniedIssue.Id():      permissionDeniedIssue,
		readFailedIssue.Id():            readFailedIssue,
		commandNotFoundIssue.Id():       commandNotFoundIssue,
		scriptExecutionFailedIssue.Id(): scriptExecutionFailedIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
	}
)

// Values returns every catalog page ordered by Id.
func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		values = append(values, i)
	}
	slices.SortFunc(values, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return values
}

// Get returns the page for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}

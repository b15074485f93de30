// Package readmehelp converts README-style Markdown into HTML for help pages.
//
// # Quick Start
//
//	conv, err := readmehelp.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, readmehelp.Input{
//	    Markdown: "## Install\n\nRun `make`.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(result.HTML)
//
// # Dialect
//
// Headings, blockquotes (>) and cites (>>) carry a self-link anchor whose id
// is derived from their text. Lists, fenced code, rules (---, ***, ___),
// emphasis, inline code, links and images are supported. A backslash escapes
// any of the marker characters. Raw HTML is never passed through: it renders
// as escaped text, and Result.Safe reports whether the fragment holds only
// markup generated by the converter.
//
// # Embedded Snippets
//
// A directive splices a highlighted excerpt of a module source file:
//
//	@SOURCEFILE: mymodule/src/handler.go LINE:42 PADD:3 :SOURCEFILE@
//	@SOURCEFILE: mymodule/mymodule.install :SOURCEFILE@
//
// The first form shows lines 39 to 45, the second the whole file. Directives
// that cannot be resolved are removed from the output without a trace.
// Directives inside inline code or fenced blocks stay literal text.
//
// # Configuration
//
//	conv, err := readmehelp.NewConverter(
//	    readmehelp.WithModules(map[string]readmehelp.Module{
//	        "mymodule": {Dir: "/srv/modules/mymodule", URL: "https://example.com/modules/mymodule"},
//	    }),
//	    readmehelp.WithStyle("monokai"),
//	    readmehelp.WithLogger(logger),
//	)
//
// Relative image targets resolve against the URL of Input.Module. Set
// Input.Standalone to wrap the fragment in a page carrying the base stylesheet
// and the highlight style.
//
// # Concurrency
//
// A Converter is safe for concurrent use. ResolveWorkers sizes a worker pool
// for batch conversion.
package readmehelp

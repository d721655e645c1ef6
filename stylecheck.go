// Package stylecheck provides a fluent API for checking manuscripts against
// a style guide and correcting what can be corrected automatically.
//
// Basic usage:
//
//	res, err := stylecheck.Open("paper.docx").Check(ctx)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(res.Summary.TotalCount, "issues corrected")
//
// With options:
//
//	res, err := stylecheck.Open("paper.docx").
//	    Style("APA").
//	    Tables().
//	    RunningHead().
//	    Store(storage.NewFileStore("out")).
//	    Save(ctx, "alice")
//
// For advanced use cases, the style, rules and docx packages are also
// available.
package stylecheck

// Open returns a Checker for the document at filename. The file is read when
// a terminal operation runs.
//
// Example:
//
//	res, err := stylecheck.Open("paper.docx").Check(ctx)
func Open(filename string) *Checker {
	return &Checker{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes returns a Checker over an in-memory document.
//
// Example:
//
//	res, err := stylecheck.FromBytes(data).Style("Custom").Check(ctx)
func FromBytes(data []byte) *Checker {
	return &Checker{
		data:    data,
		hasData: true,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	res := stylecheck.Must(stylecheck.Open("paper.docx").Check(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

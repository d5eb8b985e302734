package interp

import (
	"io"
	"os"
	"path/filepath"

	"github.com/shev-sh/shev/internal/ast"
)

// redirectResult is the outcome of applying a Simple command's redirects:
// the effective stdin/stdout to give the child, and any opened files that
// must be closed once the child exits.
type redirectResult struct {
	Stdin   io.Reader
	Stdout  io.Writer // nil means "use the caller's default stdout discipline"
	closers []io.Closer
}

func (r *redirectResult) Close() {
	for _, c := range r.closers {
		c.Close()
	}
}

// applyRedirects opens each redirect's target file per spec.md §4.2 and
// folds them onto curStdin. Relative targets resolve against workDir —
// the Runtime's tracked working directory, not the shev process's own
// OS-level cwd, since cd (spec.md §4.4) never calls os.Chdir. The fd
// number on a Redirect is recognized but not acted upon — this engine
// only ever targets stdin/stdout, matching the documented limitation in
// spec.md §4.2. When multiple redirects target the same stream, the last
// one wins.
func applyRedirects(redirects []ast.Redirect, workDir string, curStdin io.Reader) (*redirectResult, error) {
	res := &redirectResult{Stdin: curStdin}

	resolve := func(file string) string {
		if filepath.IsAbs(file) {
			return file
		}
		return filepath.Join(workDir, file)
	}

	for _, rd := range redirects {
		switch rd.Mode {
		case ast.Read:
			f, err := os.OpenFile(resolve(rd.File), os.O_RDONLY, 0)
			if err != nil {
				res.Close()
				return nil, &RedirectOpenError{File: rd.File, Err: err}
			}
			res.closers = append(res.closers, f)
			res.Stdin = f

		case ast.Write:
			// create-new semantics: fails if the file already exists.
			// A deliberate divergence from POSIX '>' truncation; see
			// spec.md §6 and DESIGN.md.
			f, err := os.OpenFile(resolve(rd.File), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
			if err != nil {
				res.Close()
				return nil, &RedirectOpenError{File: rd.File, Err: err}
			}
			res.closers = append(res.closers, f)
			res.Stdout = f

		case ast.ReadAppend:
			f, err := os.OpenFile(resolve(rd.File), os.O_RDONLY|os.O_APPEND, 0)
			if err != nil {
				res.Close()
				return nil, &RedirectOpenError{File: rd.File, Err: err}
			}
			res.closers = append(res.closers, f)
			res.Stdin = f

		case ast.WriteAppend:
			f, err := os.OpenFile(resolve(rd.File), os.O_WRONLY|os.O_CREATE|os.O_APPEND|os.O_EXCL, 0o644)
			if err != nil {
				res.Close()
				return nil, &RedirectOpenError{File: rd.File, Err: err}
			}
			res.closers = append(res.closers, f)
			res.Stdout = f

		case ast.ReadWrite:
			f, err := os.OpenFile(resolve(rd.File), os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
			if err != nil {
				res.Close()
				return nil, &RedirectOpenError{File: rd.File, Err: err}
			}
			res.closers = append(res.closers, f)
			res.Stdin = f
			res.Stdout = f

		case ast.ReadDup, ast.WriteDup:
			res.Close()
			what := "<&"
			if rd.Mode == ast.WriteDup {
				what = ">&"
			}
			return nil, &NotImplementedError{What: what + " fd-duplication redirect"}

		default:
			res.Close()
			return nil, &NotImplementedError{What: "unknown redirect mode"}
		}
	}

	return res, nil
}

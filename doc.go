// Package paperscan renders documents onto a styled sheet of paper and
// captures them as page images.
//
// # Quick Start
//
// Create a session, generate pages, export them, and close when done:
//
//	s, err := paperscan.NewSession()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	result, err := s.Generate(ctx, paperscan.Input{
//	    Content: "Dear diary,\n\ntoday I wrote a very long letter...",
//	    Format:  paperscan.FormatText,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Pages, "pages")
//
//	f, _ := os.Create("letter.pdf")
//	defer f.Close()
//	if err := s.WritePDF(f); err != nil {
//	    log.Fatal(err)
//	}
//
// # Generation Pipeline
//
//  1. Content preparation (Markdown via Goldmark, plain text escaping,
//     relative image paths rewritten to file:// URLs)
//  2. Measuring: the paper style is applied and the content height is read
//     from the render surface; the empty sheet height is the page budget
//  3. Paginating: content taller than the budget is split at whitespace by
//     appending one token at a time and re-measuring
//  4. Rendering: every page is captured, the optional scanner effect raises
//     contrast, and the image is appended to the session Collection
//
// # Surfaces
//
// A Surface is the height oracle and the capture device. Two are built in:
//
//   - SurfaceChrome (default): headless Chrome via go-rod, full HTML and CSS
//   - SurfaceCanvas: pure Go layout of text blocks with tdewolff/canvas
//
// Custom surfaces are injected with WithSurface.
//
// # Collection
//
// Generated images accumulate in a Collection that can be reordered
// (Move, MoveLeft, MoveRight), pruned (RemoveAt, RemoveAll) and observed
// (Subscribe). Out of range operations are silent no-ops.
//
// # Parallel Processing
//
// For batch rendering, use SessionPool to manage multiple surfaces:
//
//	pool := paperscan.NewSessionPool(paperscan.ResolvePoolSize(0))
//	defer pool.Close()
//
//	s, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(s)
package paperscan

// Package styles is the drawing style registry.
//
// It holds the named drawing themes (palette plus line weights), the symbol
// size table used by the projection renderer, and the wall and foundation
// conventions shared by the synthesizer and the renderer. Everything here is
// plain data; [Lookup] is the only function with behavior beyond formatting.
//
// # Themes
//
// Built-in themes:
//
//   - technical: black linework on white (default)
//   - blueprint: white linework on blueprint blue
//   - monochrome: greyscale, heavy poché
//   - sketch: warm paper tones
//
// Unknown theme names fall back to [Default]:
//
//	theme, _ := styles.Lookup("blueprint")
//	css := theme.CSS()
package styles

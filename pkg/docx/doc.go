// Package docx writes WordprocessingML documents and renders lesson plans
// into the official printable layout.
package docx

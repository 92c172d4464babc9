// SPDX-License-Identifier: MIT

// Package report renders an assembled circuit as text: the tree/chord split
// with its loop matrix, the Kirchhoff equations (symbolic and with element
// values substituted), the state-space matrices and a sampled results table.
//
// Every writer takes an io.Writer and returns the first write error.
// Document and WriteYAML give the same content in machine-readable form.
package report

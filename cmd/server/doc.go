// Command server runs the file-management engine HTTP service.
package main

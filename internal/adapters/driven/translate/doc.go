// Package translate is the HTTP adapter for the translation service's
// file API. Default-locale source files are registered once and
// re-uploaded on change; the service writes translated variants back
// into the tree out of process, so this adapter only ever pushes.
package translate

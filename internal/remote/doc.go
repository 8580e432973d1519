// Package remote abstracts the remote file service holding the inbox and
// the filed library. The production implementation targets Dropbox.
package remote

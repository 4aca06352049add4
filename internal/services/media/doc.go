// Package media turns local image files into data URLs that can be stored
// as post, ad or avatar image references.
package media

// Package enhance rewrites draft posts and complaints through Gemini.
//
// The rewrite is only a preview: callers show it and decide whether to use
// it. Without an API key the service reports itself disabled instead of
// failing.
package enhance

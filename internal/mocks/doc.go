// Package mocks holds testify/mock implementations of the cache and
// repository interfaces, in the shape mockery produces with the expecter
// option enabled.
package mocks

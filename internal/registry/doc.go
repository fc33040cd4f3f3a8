// Package registry collects the contributions feature modules make to the
// fixed extension points of the UI.
//
// A Registry is built once at start-up and handed to each module's Register
// function. Registration is a discrete phase: once Seal is called the
// registry only answers queries. There is no unregister path.
package registry

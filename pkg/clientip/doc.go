// Package clientip resolves the address of the caller behind load balancers
// so that tenant resolution warnings and denials can be traced to a source.
//
// Forwarding headers are trusted as is. Deploy behind a proxy that
// overwrites them.
package clientip

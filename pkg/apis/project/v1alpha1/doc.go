// Package v1alpha1 contains the artifact coordinate and build tool types used to
// describe platform BOMs and extensions.
package v1alpha1

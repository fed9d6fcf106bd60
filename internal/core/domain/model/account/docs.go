// Package account contains the participant aggregate and the role
// enumeration. Participants are looked up by canonical phone or lowercased
// email; the role decides which lifecycle edges and assignments they may
// perform.
package account

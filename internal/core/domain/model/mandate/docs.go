// Package mandate contains the administrative-document mandate aggregate: a
// client entrusts an agent with obtaining an official document on their
// behalf. The package mirrors the shipment lifecycle with its own status
// enumeration and transition graph, including administration-side failure.
package mandate

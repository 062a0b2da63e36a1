package service

import "mylocator/domain"

// SameInstance reports whether expected and observed denote the same running
// service instance. Pure comparison, no I/O: true iff all four discriminator
// fields (ServiceID, InstanceID, PID, VerificationToken) are pairwise equal.
// Port and Context differences are ignored: an instance keeps its identity
// when re-discovered on another port, and never shares identity with another
// process just because the context matches.
//
// Used for exact-identity confirmation after discovery. Restart detection in
// Monitor deliberately compares only InstanceID/PID, so a live endpoint that
// changed either field is classified as restarted without requiring the full
// 4-tuple.
//
// Called from cmd attach mode after a recovery event and from library consumers.
func SameInstance(expected, observed domain.ServiceRecord) bool {
	return expected.ServiceID == observed.ServiceID &&
		expected.InstanceID == observed.InstanceID &&
		expected.PID == observed.PID &&
		expected.VerificationToken == observed.VerificationToken
}

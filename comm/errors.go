// SPDX-License-Identifier: MIT

package comm

import "errors"

// Sentinel errors for world construction and rank communication.
// All are matched with errors.Is; call sites wrap them with rank and tag
// context via fmt.Errorf("...: %w", ...).
var (
	// ErrBadSize indicates a non-positive world size.
	ErrBadSize = errors.New("comm: world size must be > 0")
	// ErrBadPeer indicates a peer id outside the world, or a rank
	// addressing itself.
	ErrBadPeer = errors.New("comm: invalid peer rank")
	// ErrTagMismatch indicates a received message whose tag does not match
	// the posted receive.
	ErrTagMismatch = errors.New("comm: message tag mismatch")
	// ErrLengthMismatch indicates a received payload whose length does not
	// match the posted receive buffer.
	ErrLengthMismatch = errors.New("comm: payload length mismatch")
	// ErrAborted indicates the run context was canceled while a rank was
	// blocked in a communication call.
	ErrAborted = errors.New("comm: run aborted")
	// ErrPeerAbort indicates another rank reported a failure through Agree.
	ErrPeerAbort = errors.New("comm: peer rank failed")
)

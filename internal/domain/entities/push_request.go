package entities

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const (
	// DeleteRefValue is the local ref git reports when a push deletes a remote branch.
	DeleteRefValue = "(delete)"
	// ZeroObjectID is the all-zero object id sentinel used by git hooks.
	ZeroObjectID = "0000000000000000000000000000000000000000"

	branchRefPrefix = "refs/heads/"
	refTupleSize    = 4
	hookArgsWithRef = 6
)

// PushRequest holds the arguments of a pre-push hook invocation.
// Only the first ref tuple is kept.
type PushRequest struct {
	Remote    string
	URL       string
	LocalRef  string
	LocalOID  string
	RemoteRef string
	RemoteOID string
}

// ParsePushRequest builds a PushRequest from the hook arguments.
// The ref tuple is taken from the arguments when present, otherwise from the
// first non-blank line of input (git's native pre-push protocol).
func ParsePushRequest(args []string, input io.Reader) (PushRequest, error) {
	if len(args) < 2 { //nolint:mnd // remote and url
		return PushRequest{}, errors.New("expected at least <remote> and <url> arguments")
	}

	request := PushRequest{Remote: args[0], URL: args[1]}
	if len(args) >= hookArgsWithRef {
		request.setRefs(args[2:hookArgsWithRef])
		return request, nil
	}

	if input == nil {
		return request, nil
	}

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) >= refTupleSize {
			request.setRefs(fields[:refTupleSize])
		}
		break
	}

	return request, scanner.Err()
}

func (it *PushRequest) setRefs(fields []string) {
	it.LocalRef = fields[0]
	it.LocalOID = fields[1]
	it.RemoteRef = fields[2]
	it.RemoteOID = fields[3]
}

// IsDelete reports whether the push deletes the remote ref.
func (it PushRequest) IsDelete() bool {
	return it.LocalRef == DeleteRefValue && it.LocalOID == ZeroObjectID
}

// HasRefs reports whether the invocation carried a ref tuple at all.
// Git provides none when there is nothing to push.
func (it PushRequest) HasRefs() bool {
	return it.LocalRef != "" || it.RemoteRef != ""
}

// RemoteBranch returns the branch name of the remote ref,
// e.g. "refs/heads/main" -> "main". Non-branch refs yield "".
func (it PushRequest) RemoteBranch() string {
	ref := strings.TrimSpace(it.RemoteRef)
	if !strings.HasPrefix(ref, branchRefPrefix) {
		return ""
	}
	return strings.TrimPrefix(ref, branchRefPrefix)
}

package fsmerrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mattgray/go-tls-handshake/internal/fsmerrors"
)

func TestConstructors_MapToExpectedAlert(t *testing.T) {
	cases := []struct {
		err   *fsmerrors.Error
		kind  fsmerrors.Kind
		alert fsmerrors.Alert
	}{
		{fsmerrors.ProtocolVersion("x"), fsmerrors.KindProtocolVersion, fsmerrors.AlertProtocolVersion},
		{fsmerrors.HandshakeFailure("x"), fsmerrors.KindHandshakeFailure, fsmerrors.AlertHandshakeFailure},
		{fsmerrors.InsufficientSecurity("x"), fsmerrors.KindInsufficientSecurity, fsmerrors.AlertInsufficientSecurity},
		{fsmerrors.UnexpectedMessage("x"), fsmerrors.KindUnexpectedMessage, fsmerrors.AlertUnexpectedMessage},
	}
	for _, c := range cases {
		require.Equal(t, c.kind, c.err.Kind())
		require.Equal(t, c.alert, c.err.Alert())
	}
}

func TestError_MessageJoinsArgsLikeFmtSprint(t *testing.T) {
	err := fsmerrors.HandshakeFailure("unexpected ", "ClientHello", " while established")
	require.Contains(t, err.Error(), "unexpected ClientHello while established")
}

func TestError_BaseChainsInnerError(t *testing.T) {
	inner := errors.New("boom")
	err := fsmerrors.HandshakeFailure("wrapping").Base(inner)
	require.ErrorIs(t, err, inner)
	require.Contains(t, err.Error(), "boom")
}

type wrappedError struct{ inner error }

func (w wrappedError) Error() string { return "wrapped: " + w.inner.Error() }
func (w wrappedError) Unwrap() error { return w.inner }

func TestAlertOf_WalksNonFSMWrapperToFindInnerFSMError(t *testing.T) {
	inner := fsmerrors.InsufficientSecurity("bad share")
	wrapped := wrappedError{inner: inner}
	require.Equal(t, fsmerrors.AlertInsufficientSecurity, fsmerrors.AlertOf(wrapped))
}

func TestAlertOf_FallsBackToHandshakeFailureForPlainErrors(t *testing.T) {
	require.Equal(t, fsmerrors.AlertHandshakeFailure, fsmerrors.AlertOf(errors.New("plain")))
}

func TestCombine_NilWhenAllNil(t *testing.T) {
	require.NoError(t, fsmerrors.Combine(nil, nil, nil))
}

func TestCombine_JoinsNonNilErrors(t *testing.T) {
	e1 := errors.New("first")
	e2 := errors.New("second")
	combined := fsmerrors.Combine(nil, e1, nil, e2)
	require.Error(t, combined)
	require.Contains(t, combined.Error(), "first")
	require.Contains(t, combined.Error(), "second")
}

func TestLogLevel_ShouldLogComparesSeverity(t *testing.T) {
	orig := fsmerrors.GetLogLevel()
	defer fsmerrors.SetLogLevel(orig)

	fsmerrors.SetLogLevel(fsmerrors.SeverityWarn)
	require.True(t, fsmerrors.ShouldLog(fsmerrors.SeverityError))
	require.True(t, fsmerrors.ShouldLog(fsmerrors.SeverityWarn))
	require.False(t, fsmerrors.ShouldLog(fsmerrors.SeverityInfo))
}

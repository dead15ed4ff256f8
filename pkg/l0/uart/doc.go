// Package uart delivers complete command buffers received over a serial
// line to L0 command parsing.
package uart

// The ESP module writes one ASCII command per line. The link splits the
// byte stream on '\n' or '\r' and hands every non-empty line to a
// FrameHandler as one bounded buffer; the parser itself never sees a
// partial command.
//
// Two situations discard bytes instead of delivering them:
//   - a line longer than MaxFrame is dropped up to the next delimiter;
//   - a partial line followed by silence longer than the inter-byte
//     timeout is dropped, so a glitch doesn't prefix the next command.

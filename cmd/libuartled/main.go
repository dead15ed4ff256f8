// Command libuartled builds the UART command parser as a C library:
//
//	go build -buildmode=c-archive -o libuartled.a ./cmd/libuartled
//
// The generated header declares parse_uart with the layout below.
package main

/*
#include <stdbool.h>
#include <stdint.h>

enum Led {
	Led1 = 0,
	Led2,
	Led3,
	Led4,
};

enum LedState {
	On = 0,
	Off,
};

typedef struct Command {
	bool success;
	enum Led led;
	enum LedState state;
} Command;
*/
import "C"

import "unsafe"

//export parse_uart
func parse_uart(buf *C.uint8_t, length C.uint32_t) C.Command {
	r := toABI(parseRaw(unsafe.Pointer(buf), uint32(length)))
	return C.Command{
		success: C.bool(r.success),
		led:     C.enum_Led(r.led),
		state:   C.enum_LedState(r.state),
	}
}

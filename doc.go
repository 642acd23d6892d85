// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package oled is a container for the SH110x OLED driver and the packages
// built around it.
//
// sh110x is the driver, gfx draws shapes and text on it and sh110x/sh110xsim
// emulates a panel for tests and development without hardware.
package oled

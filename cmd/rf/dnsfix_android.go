//go:build android

package main

// Go on Android has no /etc/resolv.conf to read nameservers from.
import _ "github.com/mtibben/androiddnsfix"

// objkit inspects and converts firmware images: ELF-like 32-bit object
// files and checksummed hex record files (S-records, Intel HEX and
// friends).
package main

func main() {
	Execute()
}

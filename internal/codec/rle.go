package codec

import "fmt"

// rleEncode replaces every run of zero bytes with a zero byte followed by
// the run length.
func rleEncode(data []byte) []byte {
	out := make([]byte, 0, len(data))
	zeros := 0
	for _, value := range data {
		if value == 0 {
			zeros++
			if zeros == 0xFF {
				out = append(out, 0, byte(zeros))
				zeros = 0
			}
			continue
		}
		if zeros > 0 {
			out = append(out, 0, byte(zeros))
			zeros = 0
		}
		out = append(out, value)
	}
	if zeros > 0 {
		out = append(out, 0, byte(zeros))
	}

	return out
}

func rleDecode(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data)*2)
	for index := 0; index < len(data); index++ {
		if data[index] != 0 {
			out = append(out, data[index])
			continue
		}
		index++
		if index >= len(data) || data[index] == 0 {
			return nil, fmt.Errorf("truncated zero run at byte %d", index)
		}
		for count := data[index]; count > 0; count-- {
			out = append(out, 0)
		}
	}

	return out, nil
}

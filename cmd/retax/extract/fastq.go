// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package extract

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// A record is a single FASTQ read,
// the four lines of the file
// that store a sequence.
type record struct {
	id    string
	lines [4]string
}

// A fastqScanner reads FASTQ records
// from an underlying reader.
type fastqScanner struct {
	name string
	sc   *bufio.Scanner
}

func newFastqScanner(name string, r io.Reader) *fastqScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	return &fastqScanner{
		name: name,
		sc:   sc,
	}
}

// Next returns the next record of the file.
// It returns io.EOF at the end of the file.
func (f *fastqScanner) next() (record, error) {
	var rec record
	for i := 0; i < 4; i++ {
		if !f.sc.Scan() {
			if err := f.sc.Err(); err != nil {
				return record{}, fmt.Errorf("on file %q: %v", f.name, err)
			}
			if i == 0 {
				return record{}, io.EOF
			}
			return record{}, fmt.Errorf("on file %q: truncated record %q", f.name, rec.lines[0])
		}
		rec.lines[i] = f.sc.Text()
	}
	if !strings.HasPrefix(rec.lines[0], "@") {
		return record{}, fmt.Errorf("on file %q: invalid record header %q", f.name, rec.lines[0])
	}
	rec.id = readID(rec.lines[0])
	return rec, nil
}

// ReadID returns the read identifier of a header line,
// the first field without the '@' prefix
// and without a mate suffix.
func readID(header string) string {
	id := strings.TrimPrefix(header, "@")
	if i := strings.IndexAny(id, " \t"); i >= 0 {
		id = id[:i]
	}
	id = strings.TrimSuffix(id, "/1")
	id = strings.TrimSuffix(id, "/2")
	return id
}

func (rec record) write(w io.Writer) error {
	for _, ln := range rec.lines {
		if _, err := fmt.Fprintf(w, "%s\n", ln); err != nil {
			return err
		}
	}
	return nil
}

// ExtractReads scans a FASTQ file
// and writes the selected reads into a new file.
// It returns the number of written reads.
func extractReads(name, out string, reads map[string]bool) (wrote int, err error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	o, err := os.Create(out)
	if err != nil {
		return 0, err
	}
	defer func() {
		e := o.Close()
		if e != nil && err == nil {
			err = e
		}
	}()
	bw := bufio.NewWriter(o)

	sc := newFastqScanner(name, f)
	for {
		rec, err := sc.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		if !reads[rec.id] {
			continue
		}
		if err := rec.write(bw); err != nil {
			return 0, fmt.Errorf("while writing file %q: %v", out, err)
		}
		wrote++
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("while writing file %q: %v", out, err)
	}
	return wrote, nil
}

// ExtractMates scans two paired FASTQ files in lockstep
// and writes the selected read pairs into two new files.
// A pair is selected if the read of the first mate is selected.
func extractMates(name1, name2, out1, out2 string, reads map[string]bool) (wrote1, wrote2 int, err error) {
	f1, err := os.Open(name1)
	if err != nil {
		return 0, 0, err
	}
	defer f1.Close()
	f2, err := os.Open(name2)
	if err != nil {
		return 0, 0, err
	}
	defer f2.Close()

	o1, err := os.Create(out1)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		e := o1.Close()
		if e != nil && err == nil {
			err = e
		}
	}()
	o2, err := os.Create(out2)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		e := o2.Close()
		if e != nil && err == nil {
			err = e
		}
	}()
	bw1 := bufio.NewWriter(o1)
	bw2 := bufio.NewWriter(o2)

	sc1 := newFastqScanner(name1, f1)
	sc2 := newFastqScanner(name2, f2)
	for {
		rec1, err := sc1.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, 0, err
		}
		rec2, err := sc2.next()
		if err == io.EOF {
			return 0, 0, fmt.Errorf("on file %q: missing mate of read %q", name2, rec1.id)
		}
		if err != nil {
			return 0, 0, err
		}

		if !reads[rec1.id] {
			continue
		}
		if err := rec1.write(bw1); err != nil {
			return 0, 0, fmt.Errorf("while writing file %q: %v", out1, err)
		}
		wrote1++
		if err := rec2.write(bw2); err != nil {
			return 0, 0, fmt.Errorf("while writing file %q: %v", out2, err)
		}
		wrote2++
	}
	if err := bw1.Flush(); err != nil {
		return 0, 0, fmt.Errorf("while writing file %q: %v", out1, err)
	}
	if err := bw2.Flush(); err != nil {
		return 0, 0, fmt.Errorf("while writing file %q: %v", out2, err)
	}
	return wrote1, wrote2, nil
}

package docx

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/beevik/etree"
	"github.com/h2non/filetype"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"dcx/document"
)

const documentPart = "word/document.xml"

// Package is an opened .docx container together with the decoded paragraph
// tree of its main document part. Parts other than the main document are
// copied through untouched on save.
type Package struct {
	SrcName string
	Doc     *document.Document

	// Media maps media part names to their detected MIME types.
	Media map[string]string

	xml  *etree.Document
	body *etree.Element
	pEls []*etree.Element
}

// ReadPackage opens a .docx file and decodes every w:p of the main document
// part into the paragraph tree. Non-paragraph body content (tables, section
// properties) is preserved verbatim for save.
func ReadPackage(srcName string, log *zap.Logger) (*Package, error) {
	r, err := fixzip.OpenReader(srcName)
	if err != nil {
		return nil, fmt.Errorf("unable to open package (%s): %w", srcName, err)
	}
	defer r.Close()

	pkg := &Package{
		SrcName: srcName,
		Doc:     document.New(),
		Media:   make(map[string]string),
	}

	var docPart io.ReadCloser
	for _, file := range r.File {
		switch {
		case file.Name == documentPart:
			rc, err := file.Open()
			if err != nil {
				return nil, fmt.Errorf("unable to open document part: %w", err)
			}
			docPart = rc
		case strings.HasPrefix(file.Name, "word/media/"):
			if mime, err := detectMedia(file); err != nil {
				log.Debug("Unable to detect media type", zap.String("part", file.Name), zap.Error(err))
			} else {
				pkg.Media[path.Base(file.Name)] = mime
			}
		}
	}
	if docPart == nil {
		return nil, fmt.Errorf("package (%s) has no %s part", srcName, documentPart)
	}
	defer docPart.Close()

	xml := etree.NewDocument()
	xml.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if _, err := xml.ReadFrom(docPart); err != nil {
		return nil, fmt.Errorf("unable to read document part: %w", err)
	}

	root := xml.Root()
	if root == nil || root.Tag != "document" {
		return nil, fmt.Errorf("document part of %s has no w:document root", srcName)
	}
	var body *etree.Element
	for _, child := range root.ChildElements() {
		if child.Tag == "body" {
			body = child
			break
		}
	}
	if body == nil {
		return nil, fmt.Errorf("document part of %s has no w:body", srcName)
	}

	for _, child := range body.ChildElements() {
		if child.Tag != "p" {
			continue
		}
		p, err := ParseParagraph(child)
		if err != nil {
			return nil, fmt.Errorf("unable to parse paragraph: %w", err)
		}
		pkg.Doc.Paragraphs = append(pkg.Doc.Paragraphs, p)
		pkg.pEls = append(pkg.pEls, child)
	}
	pkg.Doc.RefreshIndexes()

	pkg.xml = xml
	pkg.body = body

	log.Debug("Opened package",
		zap.String("source", srcName),
		zap.Int("paragraphs", len(pkg.Doc.Paragraphs)),
		zap.Int("media_parts", len(pkg.Media)))
	return pkg, nil
}

func detectMedia(file *fixzip.File) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	// filetype needs only the header bytes
	head := make([]byte, 261)
	n, err := io.ReadFull(rc, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	kind, err := filetype.Match(head[:n])
	if err != nil {
		return "", err
	}
	if kind == filetype.Unknown {
		return "application/octet-stream", nil
	}
	return kind.MIME.Value, nil
}

// Save writes the package to outputPath: the rebuilt main document part plus
// every other part copied through unchanged.
func (pkg *Package) Save(outputPath string, log *zap.Logger) (err error) {
	if pkg.xml == nil || pkg.body == nil {
		return fmt.Errorf("package %s was not fully read: %w", pkg.SrcName, document.ErrOrphanedNode)
	}

	// swap the decoded paragraphs back into the body, keeping everything
	// else (tables, sectPr) in place
	insertAt := -1
	for i, child := range pkg.body.Child {
		if el, ok := child.(*etree.Element); ok && el.Tag == "p" {
			insertAt = i
			break
		}
	}
	for _, el := range pkg.pEls {
		pkg.body.RemoveChild(el)
	}
	if insertAt < 0 || insertAt > len(pkg.body.Child) {
		insertAt = 0
	}
	built := make([]*etree.Element, 0, len(pkg.Doc.Paragraphs))
	for _, p := range pkg.Doc.Paragraphs {
		built = append(built, BuildParagraph(p))
	}
	// InsertChildAt keeps relative order when inserting one by one
	for i := len(built) - 1; i >= 0; i-- {
		pkg.body.InsertChildAt(insertAt, built[i])
	}
	pkg.pEls = built

	data, err := pkg.xml.WriteToBytes()
	if err != nil {
		return fmt.Errorf("unable to serialize document part: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", outputPath, err)
	}
	defer func() {
		err = multierr.Append(err, out.Close())
	}()

	r, err := fixzip.OpenReader(pkg.SrcName)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", pkg.SrcName, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	defer func() {
		err = multierr.Append(err, w.Close())
	}()

	for _, file := range r.File {
		if file.Name == documentPart {
			fw, err := w.Create(documentPart)
			if err != nil {
				return fmt.Errorf("unable to create document part: %w", err)
			}
			if _, err := fw.Write(data); err != nil {
				return fmt.Errorf("unable to write document part: %w", err)
			}
			continue
		}

		// unset data descriptor flag the same way broken producers need it
		file.Flags &= ^fixzip.FlagDataDescriptor

		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to copy part (%s): %w", file.Name, err)
		}
	}

	log.Debug("Saved package", zap.String("output", outputPath), zap.Int("paragraphs", len(pkg.Doc.Paragraphs)))
	return nil
}

package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
	"github.com/shandysiswandi/godna/internal/pkg/pkgerror"
	"github.com/shandysiswandi/godna/internal/pkg/pkgmetric"
)

const fastaExt = ".fasta"

var errInvalidFasta = errors.New("Please select a valid FASTA file (.fasta)")

// Upload simulates the analysis of a FASTA report. Only the file name is
// checked, case-sensitively. Accepted files become the session's selected
// file and the newest history entry; rejected files clear the selection and
// leave the history untouched.
func (u *Usecase) Upload(ctx context.Context, sessionID, fileName string) (UploadResult, error) {
	if _, err := u.store.GetSession(ctx, sessionID); err != nil {
		return UploadResult{}, mapStoreErr(err)
	}

	if !strings.HasSuffix(fileName, fastaExt) {
		if err := u.store.SetSelectedFile(ctx, sessionID, ""); err != nil {
			return UploadResult{}, mapStoreErr(err)
		}

		u.metrics.RecordUpload(pkgmetric.OutcomeRejected)
		slog.WarnContext(ctx, "rejected upload", "file_name", fileName)
		return UploadResult{}, pkgerror.NewInvalidInput(errInvalidFasta)
	}

	now := u.clock.Now()
	entry := entity.UploadHistoryEntry{
		FileName:    fileName,
		Date:        now.Format("1/2/2006"),
		Time:        now.Format("3:04:05 PM"),
		ProcessTime: strconv.Itoa(u.processSeconds()) + " sec",
	}

	if err := u.store.PrependHistory(ctx, sessionID, entry); err != nil {
		return UploadResult{}, mapStoreErr(err)
	}

	u.metrics.RecordUpload(pkgmetric.OutcomeOK)
	slog.InfoContext(ctx, "accepted upload", "file_name", fileName, "process_time", entry.ProcessTime)

	return UploadResult{Entry: entry}, nil
}

// processSeconds draws a whole number uniformly from the configured range.
func (u *Usecase) processSeconds() int {
	span := u.upload.MaxProcessSeconds - u.upload.MinProcessSeconds + 1
	return u.upload.MinProcessSeconds + u.randIntn(span)
}

// History lists the session's accepted uploads, newest first.
func (u *Usecase) History(ctx context.Context, sessionID string) ([]entity.UploadHistoryEntry, error) {
	history, err := u.store.ListHistory(ctx, sessionID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return history, nil
}

func (u *Usecase) SelectedFile(ctx context.Context, sessionID string) (string, error) {
	name, err := u.store.SelectedFile(ctx, sessionID)
	if err != nil {
		return "", mapStoreErr(err)
	}
	return name, nil
}

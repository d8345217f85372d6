package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nutritrack/internal/common"
	"github.com/dmitrijs2005/nutritrack/internal/filex"
	"github.com/dmitrijs2005/nutritrack/internal/netx"
	"github.com/dmitrijs2005/nutritrack/internal/recognition"
)

var errNoClassifier = errors.New("image recognition is not configured")

func loadImage(ctx context.Context, src string) ([]byte, error) {
	if netx.IsURL(src) {
		return netx.Download(ctx, src, filex.MaxImageSize)
	}
	return filex.ReadLimited(src, filex.MaxImageSize)
}

// Recognize prefills a food entry from a photo, lets the user correct it
// and logs it.
func (a *App) Recognize(ctx context.Context, args []string) error {
	if a.classifier == nil {
		return errNoClassifier
	}
	src, err := oneArg(args, "recognize <path|url>")
	if err != nil {
		return err
	}

	image, err := loadImage(ctx, src)
	if err != nil {
		return err
	}

	form, err := recognition.Recognize(ctx, a.classifier, image)
	if errors.Is(err, common.ErrNoFoodDetected) {
		fmt.Fprintln(a.out, "No food detected in the image.")
		return nil
	}
	if err != nil {
		a.log.Warn(ctx, "recognition failed", "source", src, "error", err)
		return err
	}
	fmt.Fprintf(a.out, "Detected: %s\n", form.Name)

	if form, err = a.editForm(form); err != nil {
		return err
	}
	e, err := a.sess.LogRecognized(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged %s (%d kcal) as %s.\n", e.Name, e.Calories, e.ID)
	return nil
}
